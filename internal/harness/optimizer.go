package harness

import (
	"encoding/csv"
	"fmt"
	"os"

	"gonum.org/v1/gonum/optimize"

	"github.com/kraklabs/bipass-pathfinder/internal/cost"
	"github.com/kraklabs/bipass-pathfinder/internal/errors"
	"github.com/kraklabs/bipass-pathfinder/internal/pathfinder"
)

// OptimizerResult is the outcome of a tuning run: the hyperparameters the
// minimizer converged on and the objective it achieved there.
type OptimizerResult struct {
	Weights   cost.Weights
	Objective float64
}

// Score is the per-query objective contribution: |visited|, doubled when
// no path was found.
func Score(res pathfinder.Result) float64 {
	if !res.Found() {
		return float64(res.VisitedCount) * 2
	}
	return float64(res.VisitedCount)
}

// RunOptimizer minimizes the mean score over the optimizer set with
// Nelder-Mead over [0,1]^3, appending every evaluation's (alpha, beta,
// gamma, objective) as a row to resultsPath.
func RunOptimizer(pf *pathfinder.Pathfinder, queries []Query, iterations int, resultsPath string) (OptimizerResult, error) {
	f, err := os.Create(resultsPath)
	if err != nil {
		return OptimizerResult{}, errors.New(errors.ErrCodeOptimizerFailed, "failed to create optimizer results file", err).
			WithDetail("path", resultsPath)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	objective := func(x []float64) float64 {
		weights := clampWeights(x)
		mean := meanScore(pf, queries, weights)

		_ = w.Write([]string{
			fmt.Sprintf("%.6f", weights.Alpha),
			fmt.Sprintf("%.6f", weights.Beta),
			fmt.Sprintf("%.6f", weights.Gamma),
			fmt.Sprintf("%.6f", mean),
		})
		w.Flush()

		return mean
	}

	problem := optimize.Problem{Func: objective}

	result, err := optimize.Minimize(problem, []float64{0.5, 0.5, 0.5}, &optimize.Settings{
		MajorIterations: iterations,
	}, &optimize.NelderMead{})
	if err != nil && result == nil {
		return OptimizerResult{}, errors.New(errors.ErrCodeOptimizerFailed, "optimizer failed to converge", err)
	}

	best := clampWeights(result.X)
	return OptimizerResult{Weights: best, Objective: result.F}, nil
}

// clampWeights projects an unconstrained Nelder-Mead iterate back onto the
// [0,1]^3 box the search space is defined over (spec §4.5).
func clampWeights(x []float64) cost.Weights {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return cost.Weights{Alpha: clamp(x[0]), Beta: clamp(x[1]), Gamma: clamp(x[2])}
}

func meanScore(pf *pathfinder.Pathfinder, queries []Query, w cost.Weights) float64 {
	if len(queries) == 0 {
		return 0
	}

	var total float64
	for _, q := range queries {
		res, err := pf.FindPath(q.Source, q.Target, w, false)
		if err != nil {
			total += Score(pathfinder.Result{VisitedCount: 0}) * 2
			continue
		}
		total += Score(res)
	}
	return total / float64(len(queries))
}
