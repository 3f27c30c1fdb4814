package cmd

import (
	"github.com/kraklabs/bipass-pathfinder/internal/config"
	"github.com/kraklabs/bipass-pathfinder/internal/fetcher"
	"github.com/kraklabs/bipass-pathfinder/internal/harness"
	"github.com/kraklabs/bipass-pathfinder/internal/pathfinder"
	"github.com/kraklabs/bipass-pathfinder/internal/store"
)

// buildRunContext loads configuration and wires the HTTP-backed fetcher,
// the persistent store, and the pathfinder engine optimizer/benchmark
// commands both need, closing over the same config file regardless of
// which mode is selected.
func buildRunContext() (*config.Config, *pathfinder.Pathfinder, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	httpFetch := fetcher.NewHTTPFetcher(cfg.WikidataAPI, cfg.WembedAPI)
	memoFetch := fetcher.NewMemoizedFetcher(httpFetch, cfg.WembedAPI)

	st, err := store.Open(store.Config{
		LabelPath:     cfg.LabelMappingPath,
		DescPath:      cfg.DescMappingPath,
		DistancePath:  cfg.DistanceMappingPath,
		AdjacencyPath: cfg.AdjacencyListPath,
	}, memoFetch)
	if err != nil {
		return nil, nil, nil, err
	}

	pf := pathfinder.New(st, cfg.EntityLimit)
	return cfg, pf, st, nil
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.NewConfig(), nil
	}
	return config.Load(configPath)
}

func loadCorpus(cfg *config.Config) (harness.Corpus, error) {
	return harness.LoadCorpus(cfg.QueryFilePaths, cfg.OptimizerSamplePercentage)
}
