package markettable

import (
	"strings"

	"marketScope/internal/chain"
	"marketScope/internal/model"
)

const (
	vTokenAddressParam          = ":vTokenAddress"
	poolComptrollerAddressParam = ":poolComptrollerAddress"
)

// Routes holds the market page templates.
type Routes struct {
	CorePoolMarket      string
	StakedEthPoolMarket string
	IsolatedPoolMarket  string
}

var DefaultRoutes = Routes{
	CorePoolMarket:      "/core-pool/market/" + vTokenAddressParam,
	StakedEthPoolMarket: "/lido-market/" + vTokenAddressParam,
	IsolatedPoolMarket:  "/isolated-pools/pool/" + poolComptrollerAddressParam + "/market/" + vTokenAddressParam,
}

// RowRouter resolves the market page of a row from its pool comptroller.
type RowRouter struct {
	routes               Routes
	corePoolAddress      string
	stakedEthPoolAddress string
}

// NewRowRouter builds a router. stakedEthPoolAddress may be empty.
func NewRowRouter(routes Routes, corePoolAddress, stakedEthPoolAddress string) *RowRouter {
	return &RowRouter{
		routes:               routes,
		corePoolAddress:      corePoolAddress,
		stakedEthPoolAddress: stakedEthPoolAddress,
	}
}

// NewRowRouterForChain builds a router from chain metadata.
func NewRowRouterForChain(routes Routes, meta chain.Metadata) *RowRouter {
	return NewRowRouter(routes, meta.CorePoolComptrollerContractAddress, meta.StakedEthPoolComptrollerContractAddress)
}

// Href returns the market page path of row. Core pool wins over the staked
// ETH pool, anything else is an isolated pool. A row without a pool
// comptroller has no page and yields "".
func (r *RowRouter) Href(row model.PoolAsset) string {
	if row.Pool == nil || strings.TrimSpace(row.Pool.ComptrollerAddress) == "" {
		return ""
	}
	comptroller := row.Pool.ComptrollerAddress

	if chain.AreAddressesEqual(comptroller, r.corePoolAddress) {
		return strings.Replace(r.routes.CorePoolMarket, vTokenAddressParam, row.VToken.Address, 1)
	}

	if r.stakedEthPoolAddress != "" && chain.AreAddressesEqual(comptroller, r.stakedEthPoolAddress) {
		return strings.Replace(r.routes.StakedEthPoolMarket, vTokenAddressParam, row.VToken.Address, 1)
	}

	href := strings.Replace(r.routes.IsolatedPoolMarket, poolComptrollerAddressParam, comptroller, 1)
	return strings.Replace(href, vTokenAddressParam, row.VToken.Address, 1)
}
