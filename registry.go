package evreg

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
)

// Registry maps event identifiers of type K to ordered sets of callbacks that
// accept an argument of type A. The zero value is an empty registry ready to
// use.
type Registry[K comparable, A any] struct {
	l sync.RWMutex

	// Slices stored in sets and mws are never mutated after being stored, so
	// Emit can keep iterating a snapshot after releasing the lock.
	sets  map[K][]*Callback[A]
	order []K
	mws   []Middleware[K, A]

	logger *slog.Logger
	policy FailurePolicy
}

// Call describes a single callback invocation as seen by middleware.
type Call[K comparable, A any] struct {
	Event    K
	Callback *Callback[A]
	Index    int
	Arg      A
}

// Middleware wraps every callback invocation. Calling next runs the rest of
// the chain and finally the callback; not calling it skips the callback.
type Middleware[K comparable, A any] func(ctx context.Context, call Call[K, A], next func(context.Context) error) error

type settings struct {
	logger *slog.Logger
	policy FailurePolicy
}

type Option func(*settings)

// WithLogger sets the logger failures are reported to. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithFailurePolicy sets how Emit reacts to a failing callback. Defaults to
// ContinueOnError.
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(s *settings) {
		s.policy = policy
	}
}

func New[K comparable, A any](opts ...Option) *Registry[K, A] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	r := &Registry[K, A]{
		logger: s.logger,
		policy: s.policy,
	}
	r.init()
	return r
}

func (r *Registry[K, A]) init() {
	if r.sets == nil {
		r.sets = map[K][]*Callback[A]{}
	}
}

func (r *Registry[K, A]) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Register adds cb to the set of callbacks for id. Registering a callback that
// is already present under id does nothing.
func (r *Registry[K, A]) Register(id K, cb *Callback[A]) {
	if cb == nil {
		panic("evreg: nil callback")
	}

	r.l.Lock()
	defer r.l.Unlock()
	r.init()

	set, ok := r.sets[id]
	if slices.Contains(set, cb) {
		return
	}
	if !ok {
		r.order = append(r.order, id)
	}
	next := make([]*Callback[A], len(set), len(set)+1)
	copy(next, set)
	r.sets[id] = append(next, cb)
}

// On wraps fn in a new callback, registers it under id and returns the handle
// so it can be unregistered later.
func (r *Registry[K, A]) On(id K, name string, fn func(ctx context.Context, arg A) error) *Callback[A] {
	cb := Func(name, fn)
	r.Register(id, cb)
	return cb
}

// Unregister removes cb from the set for id and reports whether it was
// registered. The relative order of the remaining callbacks is kept.
func (r *Registry[K, A]) Unregister(id K, cb *Callback[A]) bool {
	r.l.Lock()
	defer r.l.Unlock()

	set := r.sets[id]
	i := slices.Index(set, cb)
	if i < 0 {
		return false
	}
	if len(set) == 1 {
		delete(r.sets, id)
		r.order = slices.DeleteFunc(r.order, func(k K) bool { return k == id })
		return true
	}
	next := make([]*Callback[A], 0, len(set)-1)
	next = append(next, set[:i]...)
	next = append(next, set[i+1:]...)
	r.sets[id] = next
	return true
}

// Use appends middleware. The first middleware added is the outermost.
func (r *Registry[K, A]) Use(mw ...Middleware[K, A]) {
	r.l.Lock()
	defer r.l.Unlock()
	r.mws = append(slices.Clip(r.mws), mw...)
}

// Emit invokes every callback registered under id, in registration order, on
// the calling goroutine. Emitting an id with no callbacks returns nil.
//
// Callbacks run against a snapshot of the set taken when Emit starts, so
// registrations made by a callback take effect on the next emission.
func (r *Registry[K, A]) Emit(ctx context.Context, id K, arg A) error {
	r.l.RLock()
	set := r.sets[id]
	mws := r.mws
	r.l.RUnlock()

	if len(set) == 0 {
		return nil
	}

	var errs []error
	for i, cb := range set {
		err := invoke(ctx, Call[K, A]{Event: id, Callback: cb, Index: i, Arg: arg}, mws)
		if err == nil {
			continue
		}
		cerr := &CallbackError{Event: id, Callback: cb.String(), Index: i, Err: err}
		if r.policy == StopOnError {
			return cerr
		}
		r.log().ErrorContext(ctx, "event callback failed",
			slog.Any("event", id),
			slog.String("callback", cb.String()),
			slog.Int("index", i),
			slog.Any("error", err),
		)
		errs = append(errs, cerr)
	}
	return errors.Join(errs...)
}

func invoke[K comparable, A any](ctx context.Context, call Call[K, A], mws []Middleware[K, A]) error {
	top := func(ctx context.Context) error {
		return recovered(func() error {
			return call.Callback.fn(ctx, call.Arg)
		})
	}
	for i := len(mws) - 1; i >= 0; i-- {
		next := top
		mw := mws[i]
		top = func(ctx context.Context) error {
			return mw(ctx, call, next)
		}
	}
	return recovered(func() error {
		return top(ctx)
	})
}

func recovered(fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// Events returns the identifiers that currently have callbacks, in the order
// they were first registered.
func (r *Registry[K, A]) Events() []K {
	r.l.RLock()
	defer r.l.RUnlock()
	return slices.Clone(r.order)
}

// Callbacks returns a copy of the callbacks registered under id, in order.
func (r *Registry[K, A]) Callbacks(id K) []*Callback[A] {
	r.l.RLock()
	defer r.l.RUnlock()
	return slices.Clone(r.sets[id])
}

func (r *Registry[K, A]) Registered(id K, cb *Callback[A]) bool {
	r.l.RLock()
	defer r.l.RUnlock()
	return slices.Contains(r.sets[id], cb)
}

func (r *Registry[K, A]) Len(id K) int {
	r.l.RLock()
	defer r.l.RUnlock()
	return len(r.sets[id])
}
