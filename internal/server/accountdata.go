package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketScope/internal/accountdata"
)

// HandleAccountData previews the account figures of the market's pool after
// an action.
// GET /chains/{id}/markets/{vToken}/account-data?action=supply&amountTokens=100
func (c *Controller) HandleAccountData(w http.ResponseWriter, r *http.Request) {
	meta, err := c.chainMetadata(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	action, err := accountdata.ParseAction(query.Get("action"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount := decimal.Zero
	if raw := query.Get("amountTokens"); raw != "" {
		if amount, err = decimal.NewFromString(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid amountTokens")
			return
		}
	}

	pools, ok := c.loadPools(r.Context(), w, meta.ChainID)
	if !ok {
		return
	}

	pool, asset, ok := accountdata.Locate(pools, mux.Vars(r)["vToken"])
	if !ok {
		writeError(w, http.StatusNotFound, "market not found")
		return
	}

	summary, err := accountdata.Compute(pool, asset, action, amount)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, summary)
	case errors.Is(err, accountdata.ErrNegativeAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, accountdata.ErrAmountExceedsBalance):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		c.Logger.Error("compute account data", zap.Uint64("chain_id", uint64(meta.ChainID)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "account data failed")
	}
}
