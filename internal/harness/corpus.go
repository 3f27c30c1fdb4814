// Package harness drives the Pathfinder over a query corpus, either
// tuning hyperparameters against a black-box optimizer or benchmarking a
// fixed set of hyperparameter configurations.
package harness

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/kraklabs/bipass-pathfinder/internal/errors"
	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

// Query is one row of the query corpus: a source/target pair to path-find
// between, tagged with the corpus's trec_id for traceability.
type Query struct {
	Source graph.EID
	Target graph.EID
	TrecID string
}

// Corpus is a query set split into an optimizer prefix and a benchmark
// suffix, per the configured sample percentage.
type Corpus struct {
	Optimizer []Query
	Benchmark []Query
}

// LoadCorpus reads every path in paths as a headerless three-column CSV
// (source_entity, target_entity, trec_id), then partitions the combined
// row set: the first samplePct fraction becomes the optimizer set, the
// remainder becomes the benchmark set.
func LoadCorpus(paths []string, samplePct float64) (Corpus, error) {
	var all []Query

	for _, p := range paths {
		rows, err := loadCSV(p)
		if err != nil {
			return Corpus{}, err
		}
		all = append(all, rows...)
	}

	cut := int(float64(len(all)) * samplePct)
	if cut > len(all) {
		cut = len(all)
	}
	if cut < 0 {
		cut = 0
	}

	return Corpus{
		Optimizer: append([]Query{}, all[:cut]...),
		Benchmark: append([]Query{}, all[cut:]...),
	}, nil
}

func loadCSV(path string) ([]Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.ErrCodeCorpusInvalid, "failed to open query corpus file", err).
			WithDetail("path", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	r.TrimLeadingSpace = true

	var queries []Query
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(errors.ErrCodeCorpusInvalid, "malformed query corpus row", err).
				WithDetail("path", path)
		}
		queries = append(queries, Query{
			Source: graph.EID(record[0]),
			Target: graph.EID(record[1]),
			TrecID: record[2],
		})
	}

	return queries, nil
}
