package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketScope/internal/accountdata"
	"marketScope/internal/chain"
	"marketScope/internal/model"
)

func accountDataController() *Controller {
	usdt := asset("0xfD5840Cd36d94D7229439859C0112a4185BC0255", "USDT", "5")
	usdt.TokenPriceCents = decimal.NewFromInt(100)
	usdt.BorrowAPYPercentage = decimal.NewFromInt(10)
	usdt.IsCollateralOfUser = true
	usdt.UserSupplyBalanceTokens = decimal.NewFromInt(400)
	usdt.UserSupplyBalanceCents = decimal.NewFromInt(40000)
	usdt.UserBorrowBalanceTokens = decimal.NewFromInt(100)
	usdt.UserBorrowBalanceCents = decimal.NewFromInt(10000)

	return &Controller{
		Source: memorySource{
			chain.BSCMainnet: {
				{Name: "Core", ComptrollerAddress: corePool, UserBorrowLimitCents: decimal.NewFromInt(20000), Assets: []model.Asset{usdt}},
			},
		},
	}
}

func TestHandleAccountData(t *testing.T) {
	controller := accountDataController()

	rec := doRequest(t, controller, http.MethodGet,
		"/chains/56/markets/0xfd5840cd36d94d7229439859c0112a4185bc0255/account-data?action=borrow&amountTokens=50")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary accountdata.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "Core", summary.PoolName)
	assert.Equal(t, accountdata.ActionBorrow, summary.Action)
	assert.True(t, decimal.NewFromInt(50).Equal(summary.Current.BorrowLimitUsedPercentage))
	require.NotNil(t, summary.Hypothetical)
	assert.True(t, decimal.NewFromInt(15000).Equal(summary.Hypothetical.BorrowBalanceCents))
	assert.True(t, decimal.NewFromInt(75).Equal(summary.Hypothetical.BorrowLimitUsedPercentage))
}

func TestHandleAccountDataWithoutAmount(t *testing.T) {
	controller := accountDataController()

	rec := doRequest(t, controller, http.MethodGet,
		"/chains/56/markets/0xfD5840Cd36d94D7229439859C0112a4185BC0255/account-data?action=supply")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary accountdata.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Nil(t, summary.Hypothetical)
}

func TestHandleAccountDataErrors(t *testing.T) {
	controller := accountDataController()
	base := "/chains/56/markets/0xfD5840Cd36d94D7229439859C0112a4185BC0255/account-data"

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown action", base + "?action=stake", http.StatusBadRequest},
		{"bad amount", base + "?action=supply&amountTokens=abc", http.StatusBadRequest},
		{"negative amount", base + "?action=supply&amountTokens=-1", http.StatusBadRequest},
		{"repay too much", base + "?action=repay&amountTokens=101", http.StatusUnprocessableEntity},
		{"unknown market", "/chains/56/markets/0x0000000000000000000000000000000000000001/account-data?action=supply", http.StatusNotFound},
		{"unknown chain", "/chains/7/markets/0x1/account-data?action=supply", http.StatusBadRequest},
		{"no pools", "/chains/97/markets/0x1/account-data?action=supply", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, controller, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}
