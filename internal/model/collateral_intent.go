package model

// CollateralIntent is an unsigned comptroller call produced by a collateral toggle.
type CollateralIntent struct {
	ChainID            uint64 `json:"chain_id"`
	PoolName           string `json:"pool_name"`
	ComptrollerAddress string `json:"comptroller_address"`
	VTokenAddress      string `json:"v_token_address"`
	Method             string `json:"method"`
	Calldata           string `json:"calldata"`
	CreatedAt          string `json:"created_at"`
}

// CollateralToggle requests enabling or disabling an asset as collateral.
type CollateralToggle struct {
	Asset              PoolAsset
	PoolName           string
	ComptrollerAddress string
}
