package evreg

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// EmitEach emits every distinct id in ids concurrently, one goroutine per id.
// Callbacks under the same id still run in registration order. Duplicate ids
// are emitted once. The returned error joins the errors of every emission.
func (r *Registry[K, A]) EmitEach(ctx context.Context, ids []K, arg A) error {
	seen := make(map[K]struct{}, len(ids))
	distinct := make([]K, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	errs := make([]error, len(distinct))
	var g errgroup.Group
	for i, id := range distinct {
		g.Go(func() error {
			errs[i] = r.Emit(ctx, id, arg)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
