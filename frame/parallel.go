package frame

import (
	"context"
	"runtime"
	"sync"
)

// parallelDispatch runs worker(i) for every i in [0,n) across a
// bounded pool, per spec.md §5: block transform and predictor
// application are independently parallel per channel, and the
// serializer gathers results in deterministic, channel-ascending
// order regardless of goroutine completion order. Grounded on the
// channel+sync.WaitGroup worker pool shape used for per-block fan-out
// in the retrieval pack's jpeg2000 encoders, generalized here with a
// type parameter so both the []float64 channel-plane path (lossy) and
// the []int32 residual-plane path (lossless) share one dispatcher.
//
// ctx is checked before every launch; per spec.md §5 "on cancellation,
// no partial output is considered valid," so a cancellation is
// reported even once some workers have already completed.
func parallelDispatch[T any](ctx context.Context, n int, worker func(i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	errs := make([]error, n)

	poolSize := runtime.GOMAXPROCS(0)
	if poolSize > n {
		poolSize = n
	}
	if poolSize < 1 {
		poolSize = 1
	}
	sem := make(chan struct{}, poolSize)

	var wg sync.WaitGroup
	var launchErr error
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			launchErr = err
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			r, err := worker(i)
			results[i] = r
			errs[i] = err
		}(i)
	}
	wg.Wait()

	if launchErr != nil {
		return nil, launchErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// checkCancel reports ctx's error, if any, for the "between boxes
// during serialization" cancellation points of spec.md §5.
func checkCancel(ctx context.Context) error {
	return ctx.Err()
}
