package accountdata

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketScope/internal/model"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func userAsset(vToken, symbol, priceCents, supplyAPY, borrowAPY, collateralFactor string, collateral bool, supplyTokens, borrowTokens string) model.Asset {
	price := d(priceCents)
	return model.Asset{
		VToken:                  model.VToken{Address: vToken, UnderlyingToken: model.Token{Symbol: symbol}},
		TokenPriceCents:         price,
		SupplyAPYPercentage:     d(supplyAPY),
		BorrowAPYPercentage:     d(borrowAPY),
		CollateralFactor:        d(collateralFactor),
		IsCollateralOfUser:      collateral,
		UserSupplyBalanceTokens: d(supplyTokens),
		UserSupplyBalanceCents:  d(supplyTokens).Mul(price),
		UserBorrowBalanceTokens: d(borrowTokens),
		UserBorrowBalanceCents:  d(borrowTokens).Mul(price),
	}
}

// corePool: limit (400*100 + 2*30000) * 0.8 = 80000 cents.
func corePool() model.Pool {
	return model.Pool{
		Name:                 "Core",
		ComptrollerAddress:   "0xfD36E2c2a6789Db23113685031d7F16329158384",
		UserBorrowLimitCents: d("80000"),
		Assets: []model.Asset{
			userAsset("0xfD5840Cd36d94D7229439859C0112a4185BC0255", "USDT", "100", "5", "10", "0.8", true, "400", "200"),
			userAsset("0xA07c5b74C9B40447a954e1466938b865b6BBea36", "BNB", "30000", "2", "4", "0.8", true, "2", "0"),
		},
	}
}

// isolatedPool: only ANKR is collateral, limit 10000*5*0.25 = 12500 cents.
func isolatedPool() model.Pool {
	return model.Pool{
		Name:                 "DeFi",
		ComptrollerAddress:   "0x1b43ea8622e76627B81665B1eCeBB4867566B963",
		IsIsolated:           true,
		UserBorrowLimitCents: d("12500"),
		Assets: []model.Asset{
			userAsset("0x53728FD51060a85ac41974C6C3Eb1DaE42776723", "ANKR", "5", "1", "12", "0.25", true, "10000", "200"),
			userAsset("0x1D8bBDE12B6b34140604E18e9f9c6e14deC16854", "USDT", "100", "3", "6", "0.8", false, "0", "100"),
		},
	}
}

type want struct {
	supply, borrow, limit, yearly string
	used                          string
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "%s: want %s, got %s", field, expected, actual)
}

func assertFigures(t *testing.T, w want, f Figures) {
	t.Helper()
	assertDecimal(t, w.supply, f.SupplyBalanceCents, "supply")
	assertDecimal(t, w.borrow, f.BorrowBalanceCents, "borrow")
	assertDecimal(t, w.limit, f.BorrowLimitCents, "limit")
	assertDecimal(t, w.yearly, f.YearlyEarningsCents, "yearly")
	if w.used != "" {
		assertDecimal(t, w.used, f.BorrowLimitUsedPercentage, "used")
	}
	assert.True(t, f.YearlyEarningsCents.Div(daysPerYear).Equal(f.DailyEarningsCents))
}

func TestComputeCurrent(t *testing.T) {
	pool := corePool()
	summary, err := Compute(pool, pool.Assets[0], ActionSupply, decimal.Zero)
	require.NoError(t, err)

	assertFigures(t, want{supply: "100000", borrow: "20000", limit: "80000", yearly: "1200", used: "25"}, summary.Current)
	assertDecimal(t, "64000", summary.Current.SafeBorrowLimitCents, "safe")
	assertDecimal(t, "1.2", summary.Current.NetAPYPercentage, "net apy")
	assert.False(t, summary.Current.AboveSafeLimit)
	assert.Equal(t, "USDT", summary.Symbol)
	assert.Equal(t, "Core", summary.PoolName)
}

func TestComputeCorePool(t *testing.T) {
	tests := []struct {
		action Action
		amount string
		want   *want
	}{
		{ActionSupply, "0", nil},
		{ActionSupply, "100000", &want{supply: "10100000", borrow: "20000", limit: "8080000", yearly: "501200"}},
		{ActionWithdraw, "0", nil},
		{ActionWithdraw, "50", &want{supply: "95000", borrow: "20000", limit: "76000", yearly: "950"}},
		{ActionBorrow, "0", nil},
		{ActionBorrow, "100", &want{supply: "100000", borrow: "30000", limit: "80000", yearly: "200", used: "37.5"}},
		{ActionRepay, "100", &want{supply: "100000", borrow: "10000", limit: "80000", yearly: "2200", used: "12.5"}},
		{ActionRepay, "0", nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.action)+"/"+tt.amount, func(t *testing.T) {
			pool := corePool()
			summary, err := Compute(pool, pool.Assets[0], tt.action, d(tt.amount))
			require.NoError(t, err)

			assertFigures(t, want{supply: "100000", borrow: "20000", limit: "80000", yearly: "1200", used: "25"}, summary.Current)
			if tt.want == nil {
				assert.Nil(t, summary.Hypothetical)
				return
			}
			require.NotNil(t, summary.Hypothetical)
			assertFigures(t, *tt.want, *summary.Hypothetical)
		})
	}
}

func TestComputeIsolatedPool(t *testing.T) {
	tests := []struct {
		action Action
		amount string
		want   *want
	}{
		{ActionSupply, "0", nil},
		{ActionSupply, "100000", &want{supply: "550000", borrow: "11000", limit: "137500", yearly: "4780", used: "8"}},
		{ActionWithdraw, "0", nil},
		{ActionWithdraw, "50", &want{supply: "49750", borrow: "11000", limit: "12437.5", yearly: "-222.5"}},
		{ActionBorrow, "0", nil},
		{ActionBorrow, "100", &want{supply: "50000", borrow: "11500", limit: "12500", yearly: "-280", used: "92"}},
		{ActionRepay, "100", &want{supply: "50000", borrow: "10500", limit: "12500", yearly: "-160", used: "84"}},
		{ActionRepay, "0", nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.action)+"/"+tt.amount, func(t *testing.T) {
			pool := isolatedPool()
			summary, err := Compute(pool, pool.Assets[0], tt.action, d(tt.amount))
			require.NoError(t, err)

			assertFigures(t, want{supply: "50000", borrow: "11000", limit: "12500", yearly: "-220", used: "88"}, summary.Current)
			assertDecimal(t, "-0.44", summary.Current.NetAPYPercentage, "net apy")
			assert.True(t, summary.Current.AboveSafeLimit)
			assert.False(t, summary.Current.AboveLimit)
			if tt.want == nil {
				assert.Nil(t, summary.Hypothetical)
				return
			}
			require.NotNil(t, summary.Hypothetical)
			assertFigures(t, *tt.want, *summary.Hypothetical)
		})
	}
}

func TestComputeNonCollateralSupplyKeepsLimit(t *testing.T) {
	pool := isolatedPool()
	summary, err := Compute(pool, pool.Assets[1], ActionSupply, d("10"))
	require.NoError(t, err)

	require.NotNil(t, summary.Hypothetical)
	assertDecimal(t, "12500", summary.Hypothetical.BorrowLimitCents, "limit")
	assertDecimal(t, "51000", summary.Hypothetical.SupplyBalanceCents, "supply")
}

func TestComputeBorrowPastLimit(t *testing.T) {
	pool := isolatedPool()
	summary, err := Compute(pool, pool.Assets[1], ActionBorrow, d("20"))
	require.NoError(t, err)

	require.NotNil(t, summary.Hypothetical)
	assert.True(t, summary.Hypothetical.AboveLimit)
	assertDecimal(t, "104", summary.Hypothetical.BorrowLimitUsedPercentage, "used")
}

func TestComputeDoesNotMutatePool(t *testing.T) {
	pool := corePool()
	_, err := Compute(pool, pool.Assets[0], ActionBorrow, d("100"))
	require.NoError(t, err)

	assertDecimal(t, "20000", pool.Assets[0].UserBorrowBalanceCents, "borrow")
}

func TestComputeErrors(t *testing.T) {
	pool := corePool()
	usdt := pool.Assets[0]

	_, err := Compute(pool, usdt, ActionWithdraw, d("401"))
	assert.ErrorIs(t, err, ErrAmountExceedsBalance)

	_, err = Compute(pool, usdt, ActionRepay, d("200.5"))
	assert.ErrorIs(t, err, ErrAmountExceedsBalance)

	_, err = Compute(pool, usdt, ActionSupply, d("-1"))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = Compute(pool, isolatedPool().Assets[0], ActionSupply, d("1"))
	assert.ErrorIs(t, err, ErrAssetNotInPool)

	_, err = Compute(pool, usdt, Action("stake"), d("1"))
	assert.Error(t, err)
}

func TestLocate(t *testing.T) {
	pools := []model.Pool{corePool(), isolatedPool()}

	pool, asset, ok := Locate(pools, "0x53728fd51060a85ac41974c6c3eb1dae42776723")
	require.True(t, ok)
	assert.Equal(t, "DeFi", pool.Name)
	assert.Equal(t, "ANKR", asset.Symbol())

	_, _, ok = Locate(pools, "0x0000000000000000000000000000000000000001")
	assert.False(t, ok)
}

func TestParseAction(t *testing.T) {
	for _, input := range []string{"supply", "withdraw", "borrow", "repay"} {
		action, err := ParseAction(input)
		require.NoError(t, err)
		assert.Equal(t, Action(input), action)
	}
	_, err := ParseAction("")
	assert.Error(t, err)
}
