package markettable

import (
	"github.com/shopspring/decimal"

	"marketScope/internal/model"
)

const (
	corePoolAddress      = "0xfD36E2c2a6789Db23113685031d7F16329158384"
	stakedEthPoolAddress = "0xF522cd0360EF8c2FF48B648d53EA1717Ec0F3Ac3"
	isolatedPoolAddress  = "0x1b43ea8622e76627B81665B1eCeBB4867566B963"
)

func testAsset(address, symbol string, supplyAPY, borrowAPY, collateralFactor string) model.Asset {
	return model.Asset{
		VToken: model.VToken{
			Address:         address,
			Symbol:          "v" + symbol,
			UnderlyingToken: model.Token{Symbol: symbol, Decimals: 18},
		},
		SupplyAPYPercentage: decimal.RequireFromString(supplyAPY),
		BorrowAPYPercentage: decimal.RequireFromString(borrowAPY),
		CollateralFactor:    decimal.RequireFromString(collateralFactor),
	}
}

func testPools() []model.Pool {
	return []model.Pool{
		{
			Name:               "Core",
			ComptrollerAddress: corePoolAddress,
			Assets: []model.Asset{
				testAsset("0xA07c5b74C9B40447a954e1466938b865b6BBea36", "BNB", "2.51", "4.10", "0.8"),
				testAsset("0xfD5840Cd36d94D7229439859C0112a4185BC0255", "USDT", "5.02", "7.35", "0.8"),
			},
		},
		{
			Name:               "DeFi",
			ComptrollerAddress: isolatedPoolAddress,
			Assets: []model.Asset{
				testAsset("0x53728FD51060a85ac41974C6C3Eb1DaE42776723", "ANKR", "0.75", "12.00", "0"),
			},
		},
		{
			Name:               "Empty",
			ComptrollerAddress: "0x23b4404E4E5eC5FF5a6FFb70B7d14E3FabF237B0",
		},
	}
}
