package evreg

import (
	"context"
	"fmt"
	"sync/atomic"
)

var idseq atomic.Int64

// Callback is a registered unit of work. Its identity is the pointer itself,
// so the same *Callback registered twice under one event is stored once.
type Callback[A any] struct {
	id   int64
	name string
	fn   func(ctx context.Context, arg A) error
}

// Func wraps fn into a new callback handle. The name only shows up in logs,
// errors and spans; it does not have to be unique.
func Func[A any](name string, fn func(ctx context.Context, arg A) error) *Callback[A] {
	if fn == nil {
		panic("evreg: nil callback func")
	}
	return &Callback[A]{
		id:   idseq.Add(1),
		name: name,
		fn:   fn,
	}
}

// Action wraps a function that takes no arguments and cannot fail.
func Action[A any](name string, fn func()) *Callback[A] {
	if fn == nil {
		panic("evreg: nil callback func")
	}
	return Func(name, func(context.Context, A) error {
		fn()
		return nil
	})
}

func (c *Callback[A]) Name() string {
	return c.name
}

func (c *Callback[A]) String() string {
	if c.name == "" {
		return fmt.Sprintf("callback#%d", c.id)
	}
	return c.name
}
