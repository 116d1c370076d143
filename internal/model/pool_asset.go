package model

// PoolAsset is an Asset carrying a read-only reference to its owning Pool.
type PoolAsset struct {
	Asset
	Pool *Pool `json:"-"`
}
