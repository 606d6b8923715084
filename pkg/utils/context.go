package utils

import (
	"context"
	"time"
)

// DetachedContext returns a context that keeps the parent's values but not its
// cancellation, so an outbound call that was already issued runs to completion
// even if the inbound caller goes away. A positive timeout adds a deadline
func DetachedContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
