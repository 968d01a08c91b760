package reply

import (
	"context"
	"time"

	"github.com/ignite/support-triage/internal/pkg/logger"
)

// FallbackDrafter tries a primary drafter and recovers with a secondary one
// when the primary fails or times out. A failure of the primary is a local
// event: it is logged and absorbed, never surfaced to the batch.
//
// Label/contract errors are not recovered this way in practice: the fallback
// template rejects the same unknown labels the primary did, so those errors
// still propagate.
type FallbackDrafter struct {
	primary  Drafter
	fallback Drafter
	timeout  time.Duration
}

// NewFallbackDrafter wraps primary with fallback. timeout bounds each call
// to the primary; zero disables the extra bound.
func NewFallbackDrafter(primary, fallback Drafter, timeout time.Duration) *FallbackDrafter {
	return &FallbackDrafter{primary: primary, fallback: fallback, timeout: timeout}
}

// Draft runs the primary strategy and falls back on any error.
func (d *FallbackDrafter) Draft(ctx context.Context, req DraftRequest) (string, error) {
	primaryCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		primaryCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	out, err := d.primary.Draft(primaryCtx, req)
	if err == nil {
		return out, nil
	}
	logger.Warn("primary drafter failed, falling back to template", "subject", req.Subject, "error", err)
	return d.fallback.Draft(ctx, req)
}
