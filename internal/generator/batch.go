package generator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CreateBatch runs jobs with at most limit in flight and returns their
// results in input order. limit <= 0 means no bound. Jobs are independent;
// a failed job does not stop the others.
func (g *Generator) CreateBatch(ctx context.Context, jobs []Job, limit int) []*Result {
	results := make([]*Result, len(jobs))

	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i, job := range jobs {
		eg.Go(func() error {
			results[i] = g.Run(ctx, job)
			return nil
		})
	}
	_ = eg.Wait()

	g.log.Debug("batch complete", "jobs", len(jobs), "succeeded", countSuccess(results))
	return results
}

func countSuccess(results []*Result) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
