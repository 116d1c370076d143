package config

import (
	"github.com/spf13/pflag"
)

// TableConfig holds configuration for the table and route commands.
type TableConfig struct {
	Source                       SourceConfig
	Chain                        ChainConfig
	Columns                      []string
	OrderBy                      string
	OrderDirection               string
	MarketType                   string
	OpenOperationModalOnRowClick bool
	LogLevel                     string
}

// LoadTable merges config file, environment variables, and flags into TableConfig.
func LoadTable(cfgFile string, flags *pflag.FlagSet) (TableConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"columns":         []string{"asset", "supplyApyLtv", "borrowApyLtv", "liquidity"},
		"order-direction": "desc",
	})
	if err != nil {
		return TableConfig{}, err
	}

	cfg := TableConfig{
		Source:                       sourceConfig(v),
		Chain:                        chainConfig(v),
		Columns:                      getStringSlice(v, "columns"),
		OrderBy:                      v.GetString("order-by"),
		OrderDirection:               v.GetString("order-direction"),
		MarketType:                   v.GetString("market-type"),
		OpenOperationModalOnRowClick: v.GetBool("open-operation-modal"),
		LogLevel:                     v.GetString("log-level"),
	}

	return cfg, nil
}

// AccountDataConfig holds configuration for the account-data command.
type AccountDataConfig struct {
	Source       SourceConfig
	Chain        ChainConfig
	Action       string
	AmountTokens string
	LogLevel     string
}

// LoadAccountData merges config file, environment variables, and flags into AccountDataConfig.
func LoadAccountData(cfgFile string, flags *pflag.FlagSet) (AccountDataConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"action": "supply",
		"amount": "0",
	})
	if err != nil {
		return AccountDataConfig{}, err
	}

	cfg := AccountDataConfig{
		Source:       sourceConfig(v),
		Chain:        chainConfig(v),
		Action:       v.GetString("action"),
		AmountTokens: v.GetString("amount"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}
