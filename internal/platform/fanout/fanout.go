// Package fanout runs a function over a slice with a bounded number of
// workers and returns the results in input order, whatever order the workers
// finish in.
//
// The validation pipeline joins lookup-backed field validators and the
// elements of a Sequence through it; the health registry runs its checkers
// through it.
package fanout

import (
	"context"
	"sync"
)

// Result is what fn returned for one item.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for every item on at most maxWorkers goroutines and blocks
// until all calls return. results[i] belongs to items[i].
//
// Once ctx is done no further calls start; the items not yet started get
// ctx.Err() as their error. Calls already running are not interrupted, so fn
// should watch ctx itself.
//
// A maxWorkers below 1 means one worker per item.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for range Workers(maxWorkers, len(items)) {
		wg.Go(func() {
			for i := range next {
				if err := ctx.Err(); err != nil {
					results[i].Err = err
					continue
				}
				results[i].Value, results[i].Err = fn(ctx, items[i])
			}
		})
	}
	for i := range items {
		next <- i
	}
	close(next)
	wg.Wait()

	return results
}

// Workers clamps a configured worker limit to [1, items]. A limit of zero or
// less means one worker per item.
func Workers(limit, items int) int {
	switch {
	case items < 1:
		return 1
	case limit < 1 || limit > items:
		return items
	default:
		return limit
	}
}
