package markettable

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"marketScope/internal/model"
)

// CollateralToggler performs the collateral mutation for a row.
type CollateralToggler interface {
	ToggleCollateral(ctx context.Context, req model.CollateralToggle) error
}

// ErrorDisplay surfaces a failed mutation to the user.
type ErrorDisplay interface {
	DisplayMutationError(err error)
}

// CollateralHandler dispatches collateral toggles without blocking the
// caller. A failed toggle is forwarded to the error display once; it is
// never retried.
type CollateralHandler struct {
	toggler CollateralToggler
	display ErrorDisplay
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewCollateralHandler(toggler CollateralToggler, display ErrorDisplay, logger *zap.Logger) *CollateralHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollateralHandler{
		toggler: toggler,
		display: display,
		logger:  logger,
	}
}

// HandleChange starts the toggle for row and returns immediately. It
// satisfies CollateralChangeFunc.
func (h *CollateralHandler) HandleChange(ctx context.Context, row model.PoolAsset) {
	req := model.CollateralToggle{Asset: row}
	if row.Pool != nil {
		req.PoolName = row.Pool.Name
		req.ComptrollerAddress = row.Pool.ComptrollerAddress
	}

	ctx = context.WithoutCancel(ctx)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.toggle(ctx, req)
	}()
}

// Wait blocks until every dispatched toggle has settled.
func (h *CollateralHandler) Wait() {
	h.wg.Wait()
}

func (h *CollateralHandler) toggle(ctx context.Context, req model.CollateralToggle) {
	err := h.toggler.ToggleCollateral(ctx, req)
	if err == nil {
		h.logger.Debug("collateral toggled",
			zap.String("pool", req.PoolName),
			zap.String("v_token", req.Asset.VToken.Address),
		)
		return
	}

	h.logger.Warn("collateral toggle failed",
		zap.String("pool", req.PoolName),
		zap.String("v_token", req.Asset.VToken.Address),
		zap.Error(err),
	)
	if h.display != nil {
		h.display.DisplayMutationError(err)
	}
}
