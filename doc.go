// Package evreg implements an event registry: a mapping from event names to
// ordered lists of callbacks. Code that cares about something happening
// registers interest under a name, and code that knows the thing happened
// emits that name without knowing who is listening.
//
// # Register callbacks
//
// Go function values cannot be compared, so callbacks are wrapped in a
// *Callback handle. The handle is what the registry deduplicates on:
//
//	reg := evreg.New[string, Order]()
//	notify := evreg.Func("notify", func(ctx context.Context, o Order) error {
//	    return sendMail(ctx, o)
//	})
//	reg.Register("order.created", notify)
//	reg.Register("order.created", notify) // no effect, already registered
//
// On is a shorthand that builds the handle and registers it in one go:
//
//	h := reg.On("order.created", "audit", func(ctx context.Context, o Order) error {
//	    return audit.Record(ctx, o)
//	})
//	defer reg.Unregister("order.created", h)
//
// # Emit events
//
// Emit runs every callback registered under a name, in the order they were
// registered, on the calling goroutine:
//
//	err := reg.Emit(ctx, "order.created", order)
//
// Emitting a name nobody registered is a no-op. When a callback fails (returns
// an error or panics) the registry logs it and keeps going by default; the
// returned error joins every failure. WithFailurePolicy(StopOnError) makes Emit
// return at the first failure instead.
//
// # Middleware
//
// Use installs middleware around every callback invocation, which is how the
// tracing subpackage opens a span per callback:
//
//	reg.Use(func(ctx context.Context, call evreg.Call[string, Order], next func(context.Context) error) error {
//	    start := time.Now()
//	    defer func() { log.Println(call.Callback, time.Since(start)) }()
//	    return next(ctx)
//	})
package evreg
