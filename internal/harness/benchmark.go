package harness

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/kraklabs/bipass-pathfinder/internal/cost"
	"github.com/kraklabs/bipass-pathfinder/internal/errors"
	"github.com/kraklabs/bipass-pathfinder/internal/pathfinder"
)

// BenchmarkSummary is one hyperparameter configuration's aggregate result
// over the benchmark set, serialized as TOML (spec §4.5; mean wall-clock
// time per query is a supplement beyond the distilled spec, present in the
// Rust original's benchmark loop).
type BenchmarkSummary struct {
	Alpha                 float64 `toml:"alpha"`
	Beta                  float64 `toml:"beta"`
	Gamma                 float64 `toml:"gamma"`
	QueryCount            int     `toml:"query_count"`
	SuccessRate           float64 `toml:"success_rate"`
	MeanVisitedOnSuccess  float64 `toml:"mean_visited_on_success"`
	MeanPathLength        float64 `toml:"mean_path_length"`
	MeanWallClockSeconds  float64 `toml:"mean_wall_clock_seconds"`
}

// CanonicalConfigs are the fixed baseline weight triples spec §4.5 names
// alongside the optimized one: uniform cost, semantic-guided, pure greedy,
// and a blended operating point.
func CanonicalConfigs() []cost.Weights {
	return []cost.Weights{
		{Alpha: 0, Beta: 1, Gamma: 0},
		{Alpha: 1, Beta: 0, Gamma: 1},
		{Alpha: 0, Beta: 0, Gamma: 1},
		{Alpha: 1, Beta: 0.5, Gamma: 1},
	}
}

// RunBenchmark evaluates every config in configs over queries, writing one
// TOML summary file per config at resultsPathPrefix + "-<index>.toml".
func RunBenchmark(pf *pathfinder.Pathfinder, queries []Query, configs []cost.Weights, resultsPathPrefix string) ([]BenchmarkSummary, error) {
	summaries := make([]BenchmarkSummary, 0, len(configs))

	for i, w := range configs {
		summary := evaluateConfig(pf, queries, w)
		summaries = append(summaries, summary)

		path := fmt.Sprintf("%s-%d.toml", resultsPathPrefix, i)
		if err := writeSummaryTOML(summary, path); err != nil {
			return summaries, err
		}
	}

	return summaries, nil
}

func evaluateConfig(pf *pathfinder.Pathfinder, queries []Query, w cost.Weights) BenchmarkSummary {
	summary := BenchmarkSummary{Alpha: w.Alpha, Beta: w.Beta, Gamma: w.Gamma, QueryCount: len(queries)}
	if len(queries) == 0 {
		return summary
	}

	var successes int
	var visitedOnSuccess, pathLengthTotal, wallClockTotal float64

	for _, q := range queries {
		start := time.Now()
		res, err := pf.FindPath(q.Source, q.Target, w, false)
		elapsed := time.Since(start)
		wallClockTotal += elapsed.Seconds()

		if err != nil || !res.Found() {
			continue
		}

		successes++
		visitedOnSuccess += float64(res.VisitedCount)
		pathLengthTotal += float64(len(res.FullPath()))
	}

	summary.SuccessRate = float64(successes) / float64(len(queries))
	summary.MeanWallClockSeconds = wallClockTotal / float64(len(queries))
	if successes > 0 {
		summary.MeanVisitedOnSuccess = visitedOnSuccess / float64(successes)
		summary.MeanPathLength = pathLengthTotal / float64(successes)
	}

	return summary
}

func writeSummaryTOML(summary BenchmarkSummary, path string) error {
	data, err := toml.Marshal(summary)
	if err != nil {
		return errors.New(errors.ErrCodeBenchmarkFailed, "failed to marshal benchmark summary", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.ErrCodeBenchmarkFailed, "failed to write benchmark summary", err).
			WithDetail("path", path)
	}
	return nil
}
