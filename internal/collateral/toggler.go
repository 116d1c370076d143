package collateral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"marketScope/internal/chain"
	"marketScope/internal/model"
)

const (
	MethodEnterMarkets = "enterMarkets"
	MethodExitMarket   = "exitMarket"
)

var ErrNotCollateral = errors.New("asset cannot be used as collateral")

// IntentSink records unsigned comptroller calls.
type IntentSink interface {
	PutIntent(intent model.CollateralIntent) error
}

// Toggler turns collateral toggles into comptroller calldata. It never signs
// or broadcasts. The pool's chain wins over the default chain.
type Toggler struct {
	chainID chain.ChainID
	sink    IntentSink
	logger  *zap.Logger
	now     func() time.Time
}

func NewToggler(chainID chain.ChainID, sink IntentSink, logger *zap.Logger) *Toggler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Toggler{
		chainID: chainID,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
	}
}

// ToggleCollateral exits the market when the asset is collateral and enters
// it otherwise.
func (t *Toggler) ToggleCollateral(ctx context.Context, req model.CollateralToggle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.sink == nil {
		return fmt.Errorf("intent sink is nil")
	}

	intent, err := t.BuildIntent(req)
	if err != nil {
		return err
	}
	if err := t.sink.PutIntent(intent); err != nil {
		return fmt.Errorf("store intent: %w", err)
	}

	t.logger.Info("collateral intent recorded",
		zap.String("pool", intent.PoolName),
		zap.String("method", intent.Method),
		zap.String("v_token", intent.VTokenAddress),
	)
	return nil
}

// BuildIntent encodes the comptroller call for req.
func (t *Toggler) BuildIntent(req model.CollateralToggle) (model.CollateralIntent, error) {
	comptroller, err := chain.ParseAddress(req.ComptrollerAddress)
	if err != nil {
		return model.CollateralIntent{}, fmt.Errorf("comptroller: %w", err)
	}
	vToken, err := chain.ParseAddress(req.Asset.VToken.Address)
	if err != nil {
		return model.CollateralIntent{}, fmt.Errorf("vtoken: %w", err)
	}

	method := MethodEnterMarkets
	if req.Asset.IsCollateralOfUser {
		method = MethodExitMarket
	} else if req.Asset.CollateralFactor.IsZero() {
		return model.CollateralIntent{}, fmt.Errorf("%w: %s", ErrNotCollateral, req.Asset.Symbol())
	}

	calldata, err := packCall(method, vToken)
	if err != nil {
		return model.CollateralIntent{}, err
	}

	chainID := uint64(t.chainID)
	if req.Asset.Pool != nil && req.Asset.Pool.ChainID != 0 {
		chainID = req.Asset.Pool.ChainID
	}

	return model.CollateralIntent{
		ChainID:            chainID,
		PoolName:           req.PoolName,
		ComptrollerAddress: comptroller.Hex(),
		VTokenAddress:      vToken.Hex(),
		Method:             method,
		Calldata:           hexutil.Encode(calldata),
		CreatedAt:          t.now().UTC().Format(time.RFC3339Nano),
	}, nil
}

func packCall(method string, vToken common.Address) ([]byte, error) {
	comptrollerABI, err := ComptrollerABI()
	if err != nil {
		return nil, fmt.Errorf("parse comptroller abi: %w", err)
	}

	var data []byte
	switch method {
	case MethodEnterMarkets:
		data, err = comptrollerABI.Pack(method, []common.Address{vToken})
	case MethodExitMarket:
		data, err = comptrollerABI.Pack(method, vToken)
	default:
		return nil, fmt.Errorf("unsupported method: %s", method)
	}
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return data, nil
}
