package cmdutil

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// RunJobs calls fn for every index in [0, n) with at most workers calls in
// flight and returns the per-index errors. Without keepGoing the first failure
// cancels the jobs not yet started and is also returned as the group error.
func RunJobs(ctx context.Context, n, workers int, keepGoing bool, fn func(ctx context.Context, i int) error) ([]error, error) {
	if workers < 1 {
		workers = 1
	}
	errs := make([]error, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = fn(gctx, i)
			if errs[i] != nil && !keepGoing {
				return errs[i]
			}
			return nil
		})
	}
	return errs, g.Wait()
}

// Skipped reports whether a job error only records the cancellation caused
// by groupErr, the failure that stopped a fail-fast batch.
func Skipped(err, groupErr error) bool {
	return groupErr != nil && err != groupErr && errors.Is(err, context.Canceled)
}

// FailedIndex returns the index of the job whose error stopped the batch.
func FailedIndex(errs []error, groupErr error) int {
	for i, err := range errs {
		if err == groupErr {
			return i
		}
	}
	return 0
}
