// Package sweep classifies every pair of shapes in a scene.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/chazu/geoq/pkg/query"
	"github.com/chazu/geoq/pkg/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls a sweep.
type Options struct {
	// Workers bounds the number of pairs classified at once. Zero means
	// GOMAXPROCS.
	Workers int
	// TouchingOnly drops pairs that share no point.
	TouchingOnly bool
	Log          *zap.Logger
}

// Summary is the outcome of a sweep. Results are ordered by the
// insertion order of A, then of B.
type Summary struct {
	Results []query.Result `json:"results"`
	// Pairs counts the same-dimension pairs considered.
	Pairs int `json:"pairs"`
	// Skipped counts pairs no solver handles.
	Skipped int `json:"skipped"`
}

type pair struct {
	a, b *scene.Shape
}

// pairs lists unordered same-dimension pairs in insertion order.
func pairs(sc *scene.Scene) []pair {
	shapes := sc.List()
	var out []pair
	for i := range shapes {
		for j := i + 1; j < len(shapes); j++ {
			if shapes[i].Dim == shapes[j].Dim {
				out = append(out, pair{a: shapes[i], b: shapes[j]})
			}
		}
	}
	return out
}

// Run intersects every same-dimension pair of sc. The scene's tolerance,
// when set, overrides the runner's. Canceling ctx aborts the sweep.
func Run(ctx context.Context, sc *scene.Scene, runner *query.Runner, opts Options) (*Summary, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if sc.Tolerance != nil {
		runner = runner.WithTolerance(*sc.Tolerance)
	}

	todo := pairs(sc)
	results := make([]*query.Result, len(todo))
	var skipped atomic.Int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range todo {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runner.Intersect(p.a, p.b)
			if errors.Is(err, query.ErrUnsupported) {
				skipped.Add(1)
				log.Debug("pair skipped", zap.String("a", p.a.Label()), zap.String("b", p.b.Label()))
				return nil
			}
			if err != nil {
				return fmt.Errorf("sweep: %s / %s: %w", p.a.Label(), p.b.Label(), err)
			}
			if opts.TouchingOnly && !res.Touching {
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("sweep aborted", zap.Error(err))
		return nil, err
	}
	// A cancellation between scheduling and the first worker leaves no
	// goroutine to report it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sum := &Summary{Pairs: len(todo), Skipped: int(skipped.Load())}
	for _, r := range results {
		if r != nil {
			sum.Results = append(sum.Results, *r)
		}
	}
	log.Info("sweep finished",
		zap.Int("shapes", sc.Len()),
		zap.Int("pairs", sum.Pairs),
		zap.Int("results", len(sum.Results)),
		zap.Int("skipped", sum.Skipped),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))
	return sum, nil
}
