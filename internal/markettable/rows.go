package markettable

import (
	"fmt"

	"marketScope/internal/model"
)

// MarketType distinguishes table instances rendering the same markets.
type MarketType string

const (
	MarketTypeNone   MarketType = ""
	MarketTypeSupply MarketType = "supply"
	MarketTypeBorrow MarketType = "borrow"
)

// ParseMarketType validates a market type string.
func ParseMarketType(input string) (MarketType, error) {
	switch MarketType(input) {
	case MarketTypeNone, MarketTypeSupply, MarketTypeBorrow:
		return MarketType(input), nil
	default:
		return MarketTypeNone, fmt.Errorf("invalid market type: %s", input)
	}
}

// DerivePoolAssets flattens pools into rows, in pool order then asset order.
// Every row points at the element of pools it came from.
func DerivePoolAssets(pools []model.Pool) []model.PoolAsset {
	total := 0
	for i := range pools {
		total += len(pools[i].Assets)
	}

	poolAssets := make([]model.PoolAsset, 0, total)
	for i := range pools {
		pool := &pools[i]
		for _, asset := range pool.Assets {
			poolAssets = append(poolAssets, model.PoolAsset{Asset: asset, Pool: pool})
		}
	}
	return poolAssets
}

// RowKey returns the stable key of a row within a table instance.
func RowKey(marketType MarketType, row model.PoolAsset) string {
	return fmt.Sprintf("market-table-row-%s-%s", marketType, row.VToken.Address)
}
