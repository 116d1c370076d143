package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"marketScope/internal/chain"
	"marketScope/internal/markettable"
	"marketScope/internal/model"
	"marketScope/internal/storage"
	"marketScope/internal/ui"
)

var uiButton = ui.RenderContext{RenderedInButton: true}

type columnResponse struct {
	Key       markettable.ColumnKey `json:"key"`
	Label     string                `json:"label"`
	Sortable  bool                  `json:"sortable"`
	Clickable bool                  `json:"clickable"`
}

type rowResponse struct {
	Key                    string                             `json:"key"`
	VTokenAddress          string                             `json:"v_token_address"`
	PoolName               string                             `json:"pool_name"`
	PoolComptrollerAddress string                             `json:"pool_comptroller_address"`
	Href                   string                             `json:"href,omitempty"`
	Operation              *markettable.OperationModalRequest `json:"operation,omitempty"`
	Cells                  []string                           `json:"cells"`
}

type orderResponse struct {
	OrderBy        markettable.ColumnKey      `json:"order_by"`
	OrderDirection markettable.OrderDirection `json:"order_direction"`
}

type marketsResponse struct {
	ChainID      chain.ChainID    `json:"chain_id"`
	Columns      []columnResponse `json:"columns"`
	Rows         []rowResponse    `json:"rows"`
	InitialOrder *orderResponse   `json:"initial_order"`
}

// HandleMarkets renders the market table of a chain.
// GET /chains/{id}/markets?columns=a,b&orderBy=k&orderDirection=desc&marketType=supply&openOperationModalOnRowClick=true
func (c *Controller) HandleMarkets(w http.ResponseWriter, r *http.Request) {
	meta, err := c.chainMetadata(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	props, err := parseProps(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pools, ok := c.loadPools(r.Context(), w, meta.ChainID)
	if !ok {
		return
	}
	props.Pools = pools

	table, err := c.builder(meta).Build(props)
	if err != nil {
		if errors.Is(err, markettable.ErrUnknownColumn) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.Logger.Error("build market table", zap.Uint64("chain_id", uint64(meta.ChainID)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "build failed")
		return
	}

	writeJSON(w, http.StatusOK, tableResponse(meta.ChainID, table))
}

// HandleCollateral toggles collateral on one market. The toggle runs in the
// background; failures show up at /errors.
// POST /chains/{id}/markets/{vToken}/collateral
func (c *Controller) HandleCollateral(w http.ResponseWriter, r *http.Request) {
	meta, err := c.chainMetadata(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if c.Collateral == nil {
		writeError(w, http.StatusNotImplemented, "collateral toggling disabled")
		return
	}

	pools, ok := c.loadPools(r.Context(), w, meta.ChainID)
	if !ok {
		return
	}

	table, err := c.builder(meta).Build(markettable.Props{
		Pools:   pools,
		Columns: []markettable.ColumnKey{markettable.ColumnCollateral},
	})
	if err != nil {
		c.Logger.Error("build collateral table", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "build failed")
		return
	}

	vToken := mux.Vars(r)["vToken"]
	row, ok := table.FindRow(vToken)
	if !ok {
		writeError(w, http.StatusNotFound, "market not found")
		return
	}
	column, _ := table.Column(markettable.ColumnCollateral)
	column.OnClick(r.Context(), row.PoolAsset)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "dispatched", "v_token_address": row.PoolAsset.VToken.Address})
}

func (c *Controller) builder(meta chain.Metadata) *markettable.Builder {
	var onChange markettable.CollateralChangeFunc
	if c.Collateral != nil {
		onChange = c.Collateral.HandleChange
	}
	return markettable.NewBuilder(markettable.NewRowRouterForChain(c.Routes, meta), onChange)
}

func (c *Controller) loadPools(ctx context.Context, w http.ResponseWriter, chainID chain.ChainID) ([]model.Pool, bool) {
	pools, err := c.Source.LoadPools(ctx, chainID)
	if err != nil {
		if errors.Is(err, storage.ErrPoolsNotFound) {
			writeError(w, http.StatusNotFound, "no pools for chain")
			return nil, false
		}
		c.Logger.Error("load pools", zap.Uint64("chain_id", uint64(chainID)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "load pools failed")
		return nil, false
	}
	for i := range pools {
		pools[i].ChainID = uint64(chainID)
	}
	return pools, true
}

func parseProps(r *http.Request) (markettable.Props, error) {
	query := r.URL.Query()

	rawColumns := splitList(query.Get("columns"))
	if len(rawColumns) == 0 {
		return markettable.Props{}, errors.New("columns are required")
	}
	columns, err := markettable.ParseColumnKeys(rawColumns)
	if err != nil {
		return markettable.Props{}, err
	}

	props := markettable.Props{Columns: columns}

	if orderBy := query.Get("orderBy"); orderBy != "" {
		key, err := markettable.ParseColumnKey(orderBy)
		if err != nil {
			return markettable.Props{}, err
		}
		direction := markettable.OrderDesc
		if raw := query.Get("orderDirection"); raw != "" {
			if direction, err = markettable.ParseOrderDirection(raw); err != nil {
				return markettable.Props{}, err
			}
		}
		props.InitialOrder = &markettable.InitialOrder{OrderBy: key, OrderDirection: direction}
	}

	if props.MarketType, err = markettable.ParseMarketType(query.Get("marketType")); err != nil {
		return markettable.Props{}, err
	}

	if raw := query.Get("openOperationModalOnRowClick"); raw != "" {
		if props.OpenOperationModalOnRowClick, err = strconv.ParseBool(raw); err != nil {
			return markettable.Props{}, err
		}
	}

	return props, nil
}

func tableResponse(chainID chain.ChainID, table *markettable.Table) marketsResponse {
	headers := table.Headers()
	columns := make([]columnResponse, 0, len(table.Columns))
	for i, column := range table.Columns {
		columns = append(columns, columnResponse{
			Key:       column.Key,
			Label:     headers[i],
			Sortable:  column.Sortable(),
			Clickable: column.OnClick != nil,
		})
	}

	rows := make([]rowResponse, 0, len(table.Rows))
	for _, row := range table.Rows {
		resp := rowResponse{
			Key:           row.Key,
			VTokenAddress: row.PoolAsset.VToken.Address,
			Href:          row.Href,
			Operation:     row.Operation,
			Cells:         table.Cells(row),
		}
		if row.PoolAsset.Pool != nil {
			resp.PoolName = row.PoolAsset.Pool.Name
			resp.PoolComptrollerAddress = row.PoolAsset.Pool.ComptrollerAddress
		}
		rows = append(rows, resp)
	}

	resp := marketsResponse{ChainID: chainID, Columns: columns, Rows: rows}
	if table.InitialOrder != nil {
		resp.InitialOrder = &orderResponse{
			OrderBy:        table.InitialOrder.OrderBy.Key,
			OrderDirection: table.InitialOrder.OrderDirection,
		}
	}
	return resp
}
