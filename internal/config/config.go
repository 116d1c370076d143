package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SourceConfig selects where pools are read from.
type SourceConfig struct {
	PoolsFile string
	PGDSN     string
	RedisAddr string
	RedisTTL  time.Duration
}

// ChainConfig selects a chain and optional comptroller overrides.
type ChainConfig struct {
	ChainID                  uint64
	CorePoolComptroller      string
	StakedEthPoolComptroller string
}

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	Addr       string
	Source     SourceConfig
	Chain      ChainConfig
	IntentsOut string
	LogLevel   string
}

// LoadServe merges config file, environment variables, and flags into ServeConfig.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"addr":        ":8080",
		"intents-out": "./data/collateral_intents.jsonl",
		"redis-ttl":   30 * time.Second,
	})
	if err != nil {
		return ServeConfig{}, err
	}

	cfg := ServeConfig{
		Addr:       v.GetString("addr"),
		Source:     sourceConfig(v),
		Chain:      chainConfig(v),
		IntentsOut: v.GetString("intents-out"),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("MARKETS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("chain-id", uint64(56))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func sourceConfig(v *viper.Viper) SourceConfig {
	return SourceConfig{
		PoolsFile: v.GetString("pools-file"),
		PGDSN:     v.GetString("pg-dsn"),
		RedisAddr: v.GetString("redis-addr"),
		RedisTTL:  v.GetDuration("redis-ttl"),
	}
}

func chainConfig(v *viper.Viper) ChainConfig {
	return ChainConfig{
		ChainID:                  v.GetUint64("chain-id"),
		CorePoolComptroller:      v.GetString("core-pool-comptroller"),
		StakedEthPoolComptroller: v.GetString("staked-eth-pool-comptroller"),
	}
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(splitEach(typed))
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

// splitEach expands comma-joined entries, as produced by environment variables.
func splitEach(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.Split(item, ",")...)
	}
	return out
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
