package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/prbuild/pkg/utils/errs"
)

// Dispatch runs handler in a new goroutine. The handler gets a background
// context that keeps the logger of ctx but not its cancellation, so work
// outlives the request that spawned it. Panics are recovered and logged;
// returned errors go to errs.Handle.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(newCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()))
			}
		}()

		if err := handler(newCtx); err != nil {
			errs.Handle(newCtx, "error in async handler", err)
		}
	}()
}

func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
