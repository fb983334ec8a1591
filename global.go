package evreg

import "context"

var globalRegistry = New[string, any]()

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry[string, any] {
	return globalRegistry
}

// Register adds cb under event on the default registry.
func Register(event string, cb *Callback[any]) {
	globalRegistry.Register(event, cb)
}

// On registers fn under event on the default registry and returns its handle.
func On(event, name string, fn func(ctx context.Context, arg any) error) *Callback[any] {
	return globalRegistry.On(event, name, fn)
}

func Unregister(event string, cb *Callback[any]) bool {
	return globalRegistry.Unregister(event, cb)
}

// Emit runs the callbacks registered under event on the default registry.
func Emit(ctx context.Context, event string, arg any) error {
	return globalRegistry.Emit(ctx, event, arg)
}
