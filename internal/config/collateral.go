package config

import (
	"github.com/spf13/pflag"
)

// ToggleConfig holds configuration for the toggle-collateral command.
type ToggleConfig struct {
	Source     SourceConfig
	Chain      ChainConfig
	VToken     string
	IntentsOut string
	LogLevel   string
}

// LoadToggle merges config file, environment variables, and flags into ToggleConfig.
func LoadToggle(cfgFile string, flags *pflag.FlagSet) (ToggleConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"intents-out": "./data/collateral_intents.jsonl",
	})
	if err != nil {
		return ToggleConfig{}, err
	}

	cfg := ToggleConfig{
		Source:     sourceConfig(v),
		Chain:      chainConfig(v),
		VToken:     v.GetString("v-token"),
		IntentsOut: v.GetString("intents-out"),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}

// ImportConfig holds configuration for the import command.
type ImportConfig struct {
	In        string
	PGDSN     string
	RPCURL    string
	RedisAddr string
	Chain     ChainConfig
	LogLevel  string
}

// LoadImport merges config file, environment variables, and flags into ImportConfig.
func LoadImport(cfgFile string, flags *pflag.FlagSet) (ImportConfig, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return ImportConfig{}, err
	}

	cfg := ImportConfig{
		In:        v.GetString("in"),
		PGDSN:     v.GetString("pg-dsn"),
		RPCURL:    v.GetString("rpc"),
		RedisAddr: v.GetString("redis-addr"),
		Chain:     chainConfig(v),
		LogLevel:  v.GetString("log-level"),
	}

	return cfg, nil
}

// ChainsConfig holds configuration for the chains command.
type ChainsConfig struct {
	RPCURL   string
	Chain    ChainConfig
	LogLevel string
}

// LoadChains merges config file, environment variables, and flags into ChainsConfig.
func LoadChains(cfgFile string, flags *pflag.FlagSet) (ChainsConfig, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return ChainsConfig{}, err
	}

	cfg := ChainsConfig{
		RPCURL:   v.GetString("rpc"),
		Chain:    chainConfig(v),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}
