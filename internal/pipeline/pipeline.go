// Package pipeline orchestrates the full exchange rate run: fetch, normalize,
// aggregate, and the missing-data reports.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"

	"fjacquet/ecb-rates/internal/collect"
	"fjacquet/ecb-rates/internal/config"
	"fjacquet/ecb-rates/internal/fetch"
	"fjacquet/ecb-rates/internal/fileutils"
	"fjacquet/ecb-rates/internal/gaps"
	"fjacquet/ecb-rates/internal/logging"
	"fjacquet/ecb-rates/internal/models"
	"fjacquet/ecb-rates/internal/normalize"
	"fjacquet/ecb-rates/internal/pipelineerror"
	"fjacquet/ecb-rates/internal/stats"

	"github.com/sirupsen/logrus"
)

var log = logging.GetLogger()

// SetLogger sets a configured logger for this package and every stage package.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
	fetch.SetLogger(logger)
	normalize.SetLogger(logger)
	collect.SetLogger(logger)
	stats.SetLogger(logger)
	gaps.SetLogger(logger)
}

// Pipeline wires the stages together for one run.
type Pipeline struct {
	cfg    *config.Config
	client *fetch.Client
	cache  fetch.CachePolicy
}

// New creates a pipeline from configuration.
func New(cfg *config.Config) *Pipeline {
	httpClient := &http.Client{Timeout: cfg.Timeout()}
	return &Pipeline{
		cfg:    cfg,
		client: fetch.NewClient(cfg.Fetch.BaseURL, httpClient, cfg.Fetch.MaxRetries, cfg.RetryDelay()),
		cache:  fetch.NewCachePolicy(cfg.Freshness()),
	}
}

// unitResult carries one currency's progress through the per-pair stages.
// A unit that fails mid-way keeps whatever it completed; downstream barriers
// only consume the parts that exist.
type unitResult struct {
	Currency       string
	Pair           string
	NormalizedPath string
	FailedStage    string
	Err            error
}

func (u *unitResult) fail(stage string, err error) {
	u.FailedStage = stage
	u.Err = &pipelineerror.UnitError{Pair: u.Pair, Stage: stage, Err: err}
}

// Run executes the whole pipeline. The returned error is non-nil only for
// unrecoverable setup failures; per-unit failures are logged, counted in the
// summary, and excluded from the aggregate reports.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	outputDir := p.cfg.Data.Directory
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	// Per-currency stages are independent; fan out and join. Each goroutine
	// writes only its own result slot and its own per-pair files.
	results := make([]unitResult, len(p.cfg.Currencies))
	var wg sync.WaitGroup
	for i, currency := range p.cfg.Currencies {
		wg.Add(1)
		go func(i int, currency string) {
			defer wg.Done()
			results[i] = p.processUnit(ctx, currency)
		}(i, currency)
	}
	wg.Wait()

	// Barrier: global sets are computed only after every unit finished.
	var normalizedFiles []string
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			log.WithFields(logrus.Fields{
				logging.FieldPair:   r.Pair,
				logging.FieldStage:  r.FailedStage,
				logging.FieldReason: r.Err.Error(),
			}).Error("Unit failed, excluding from aggregation")
		}
		if r.NormalizedPath != "" {
			normalizedFiles = append(normalizedFiles, r.NormalizedPath)
		}
	}

	pairs := collect.Pairs(normalizedFiles)
	dates := collect.Dates(normalizedFiles)

	if _, err := collect.WritePairsReport(outputDir, pairs); err != nil {
		return nil, err
	}
	if _, err := collect.WriteDatesReport(outputDir, dates); err != nil {
		return nil, err
	}

	expected := gaps.ExpandMonths(dates)

	// Gap detection reads each pair's stats back from storage rather than
	// holding them in memory; a pair whose stats file never materialized is
	// simply treated as having zero coverage.
	lookup := func(pair string) ([]models.MonthlyStat, bool) {
		if !fileutils.FileExists(filepath.Join(outputDir, stats.StatsFileName(pair))) {
			return nil, false
		}
		monthly, err := stats.ReadStatsFile(outputDir, pair)
		if err != nil {
			log.WithError(err).WithField(logging.FieldPair, pair).Error("Failed to read stats file, treating pair as uncovered")
			return nil, false
		}
		return monthly, true
	}

	perPair := make([][]models.MissingEntry, 0, len(pairs))
	for _, pair := range pairs {
		missing := gaps.Detect(pair, expected, lookup)
		if _, err := gaps.WriteMissingFile(outputDir, pair, missing); err != nil {
			return nil, err
		}
		perPair = append(perPair, missing)
	}

	aggregate := gaps.Aggregate(perPair, pairs)
	if _, err := gaps.WriteAggregateReport(outputDir, aggregate); err != nil {
		return nil, err
	}

	summary := buildSummary(p.cfg.Currencies, results, pairs, dates, expected, aggregate)
	if err := summary.Write(outputDir); err != nil {
		return nil, err
	}
	return summary, nil
}

// processUnit runs the per-currency stages: fetch (or reuse the cached raw
// file), normalize, monthly stats. Cross-stage ordering within the unit is
// strict; a failed stage stops the unit there.
func (p *Pipeline) processUnit(ctx context.Context, currency string) unitResult {
	result := unitResult{Currency: currency, Pair: models.PairName(currency)}
	outputDir := p.cfg.Data.Directory
	rawPath := filepath.Join(outputDir, "ECB_"+result.Pair+".csv")

	if p.cache.IsFresh(rawPath) {
		log.WithFields(logrus.Fields{
			logging.FieldPair: result.Pair,
			logging.FieldFile: rawPath,
		}).Info("Using cached raw file")
	} else {
		body, err := p.client.Fetch(ctx, currency)
		if err != nil {
			result.fail("fetch", err)
			return result
		}
		// The upstream body is persisted verbatim so the raw file is a
		// faithful cache of what the API returned.
		if err := fileutils.WriteFile(rawPath, body, 0640); err != nil {
			result.fail("fetch", err)
			return result
		}
		log.WithFields(logrus.Fields{
			logging.FieldPair: result.Pair,
			logging.FieldFile: rawPath,
		}).Info("Downloaded raw data")
	}

	normalizedPath, err := normalize.File(rawPath, outputDir, currency)
	if err != nil {
		result.fail("normalize", err)
		return result
	}
	result.NormalizedPath = normalizedPath

	monthly, err := stats.FromNormalizedFile(normalizedPath, result.Pair)
	if err != nil {
		result.fail("monthly-stats", err)
		return result
	}
	if _, err := stats.WriteStatsFile(outputDir, result.Pair, monthly); err != nil {
		result.fail("monthly-stats", err)
		return result
	}
	return result
}
