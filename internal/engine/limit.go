package engine

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"
)

func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// fanOut runs fn for every index in [0, n) on at most threads goroutines.
// Work not yet started when ctx is done is skipped.
func fanOut(ctx context.Context, n, threads int, limiter *rate.Limiter, fn func(ctx context.Context, i int)) {
	p := pool.New().WithMaxGoroutines(threads)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		p.Go(func() {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			fn(ctx, i)
		})
	}
	p.Wait()
}
