package estimate

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/outbound-cli/internal/cost"
	"github.com/sells-group/outbound-cli/internal/funnel"
)

// maxSweepPoints bounds the number of targets a single sweep will evaluate.
const maxSweepPoints = 10000

// Point is one meetings target of a sweep.
type Point struct {
	Meetings float64       `json:"meetings"`
	Stages   funnel.Stages `json:"stages"`
	Summary  cost.Summary  `json:"summary"`
}

// Targets expands from..to in increments of step, inclusive of to when it
// falls on a step.
func Targets(from, to, step float64) ([]float64, error) {
	for _, v := range []float64{from, to, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, eris.Errorf("estimate: invalid sweep range %v..%v step %v", from, to, step)
		}
	}
	if from <= 0 || step <= 0 || to < from {
		return nil, eris.Errorf("estimate: invalid sweep range %v..%v step %v", from, to, step)
	}
	// Counted in float first so a huge span cannot overflow int.
	count := math.Floor((to-from)/step+1e-9) + 1
	if count > maxSweepPoints {
		return nil, eris.Errorf("estimate: sweep of %.0f points exceeds %d", count, maxSweepPoints)
	}
	n := int(count)
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out, nil
}

// Sweep estimates base at every meetings target, running up to concurrency
// estimates at once. Points are returned in target order. The first failing
// target cancels the rest.
func (e *Estimator) Sweep(ctx context.Context, base Input, targets []float64, concurrency int) ([]Point, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	points := make([]Point, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, m := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in := base
			in.MeetingsNeeded = m
			res, err := e.Estimate(in)
			if err != nil {
				return eris.Wrapf(err, "estimate: sweep target %v", m)
			}
			points[i] = Point{Meetings: m, Stages: res.Stages, Summary: res.Summary}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
