// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. If the goroutine panics,
// the panic is caught and logged with stack trace instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// SafeGoCtx launches fn on a detached copy of ctx. The goroutine keeps the
// context values but outlives the caller's cancellation, which is what
// fire-and-forget work such as background reconciliation needs.
func SafeGoCtx(ctx context.Context, log logger.Interface, name string, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	SafeGo(log, name, func() {
		fn(detached)
	})
}
