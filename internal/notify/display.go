package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"marketScope/internal/collateral"
)

const defaultCapacity = 100

// Notice is a mutation error as shown to the user.
type Notice struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail"`
	At      time.Time `json:"at"`
}

// Display keeps the most recent mutation errors and logs each of them.
type Display struct {
	logger   *zap.Logger
	capacity int

	mu      sync.Mutex
	notices []Notice
}

func NewDisplay(capacity int, logger *zap.Logger) *Display {
	if logger == nil {
		logger = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Display{logger: logger, capacity: capacity}
}

// DisplayMutationError records err as a user-facing notice.
func (d *Display) DisplayMutationError(err error) {
	if err == nil {
		return
	}
	notice := Classify(err)
	notice.At = time.Now().UTC()

	d.logger.Error("mutation failed",
		zap.String("code", notice.Code),
		zap.String("message", notice.Message),
		zap.Error(err),
	)

	d.mu.Lock()
	d.notices = append(d.notices, notice)
	if overflow := len(d.notices) - d.capacity; overflow > 0 {
		d.notices = append([]Notice(nil), d.notices[overflow:]...)
	}
	d.mu.Unlock()
}

// Recent returns the retained notices, oldest first.
func (d *Display) Recent() []Notice {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Notice(nil), d.notices...)
}

// Classify maps err to a user-facing notice.
func Classify(err error) Notice {
	notice := Notice{Detail: err.Error()}
	switch {
	case errors.Is(err, collateral.ErrNotCollateral):
		notice.Code = "not_collateral"
		notice.Message = "This asset cannot be used as collateral."
	case errors.Is(err, context.DeadlineExceeded):
		notice.Code = "timeout"
		notice.Message = "The transaction took too long to be submitted."
	case errors.Is(err, context.Canceled):
		notice.Code = "canceled"
		notice.Message = "The transaction was canceled."
	default:
		notice.Code = "unexpected"
		notice.Message = "Something went wrong. Please try again."
	}
	return notice
}
