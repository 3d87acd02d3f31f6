package orchestrator

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/browser"
	"github.com/aleister1102/kkupeople/internal/config"
	"github.com/aleister1102/kkupeople/internal/datastore"
	"github.com/aleister1102/kkupeople/internal/differ"
	"github.com/aleister1102/kkupeople/internal/discovery"
	"github.com/aleister1102/kkupeople/internal/extractor"
	"github.com/aleister1102/kkupeople/internal/models"
	"github.com/aleister1102/kkupeople/internal/output"
	"github.com/aleister1102/kkupeople/internal/runlog"
	"github.com/aleister1102/kkupeople/internal/urlhandler"
)

// Orchestrator drives one scrape run through its fixed sequence: open a
// browser session, discover profile links from the seed listing pages,
// extract each profile, write the output array. Per-item failures are
// contained; only a session that cannot start at all aborts the run.
type Orchestrator struct {
	cfg    *config.GlobalConfig
	logger zerolog.Logger

	aggregator *discovery.Aggregator
	extractor  *extractor.Extractor
	writer     *output.Writer

	archive *datastore.ArchiveStore
	runDiff *differ.RunDiffer
	runLog  *runlog.DB

	// openSession is swapped out in tests.
	openSession func(config.BrowserConfig, zerolog.Logger) (browser.Session, error)
}

// New wires an orchestrator from configuration. The archive and run log
// are optional; when disabled their pointers stay nil and the run skips
// those steps.
func New(cfg *config.GlobalConfig, writer *output.Writer, log zerolog.Logger) (*Orchestrator, error) {
	aggregator, err := discovery.NewAggregator(cfg.ScrapeConfig, cfg.StabilizerConfig, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build link discovery: %w", err)
	}
	ext, err := extractor.New(cfg.ScrapeConfig, cfg.StabilizerConfig, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build extractor: %w", err)
	}

	o := &Orchestrator{
		cfg:        cfg,
		logger:     log.With().Str("component", "Orchestrator").Logger(),
		aggregator: aggregator,
		extractor:  ext,
		writer:     writer,

		openSession: browser.Open,
	}

	if cfg.StorageConfig.Enabled {
		o.archive = datastore.NewArchiveStore(cfg.StorageConfig, log)
		o.runDiff = differ.NewRunDiffer(log)
	}
	if cfg.RunLogConfig.Enabled {
		runLogDB, err := runlog.NewDB(cfg.RunLogConfig.DBPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open run log: %w", err)
		}
		o.runLog = runLogDB
	}
	return o, nil
}

// Close releases resources held across runs.
func (o *Orchestrator) Close() {
	if o.runLog != nil {
		_ = o.runLog.Close()
	}
}

// Run executes one full scrape. The output file always receives a valid
// JSON array; on any top-level failure it is empty and the error is
// returned for the process exit status.
func (o *Orchestrator) Run(ctx context.Context) (models.RunSummary, error) {
	summary := models.RunSummary{
		RunID:     time.Now().UTC().Format("20060102-150405"),
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}
	o.recordStart(summary)

	session, err := o.openSession(o.cfg.BrowserConfig, o.logger)
	if err != nil {
		return o.finish(summary, nil, fmt.Errorf("browser session could not start: %w", err))
	}
	defer session.Close()
	o.logger.Info().Str("backend", session.Backend()).Str("run_id", summary.RunID).Msg("Scrape run started")

	links, err := o.discoverLinks(ctx, session)
	if err != nil {
		return o.finish(summary, nil, fmt.Errorf("link discovery failed: %w", err))
	}
	summary.LinksFound = len(links)
	o.logger.Info().Int("links", len(links)).Msg("Profile links discovered")

	records := o.extractEach(ctx, session, links, &summary)
	return o.finish(summary, records, nil)
}

func (o *Orchestrator) discoverLinks(ctx context.Context, session browser.Session) ([]string, error) {
	base, err := url.Parse(o.cfg.ScrapeConfig.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL '%s': %w", o.cfg.ScrapeConfig.BaseURL, err)
	}

	seeds := make([]string, 0, len(o.cfg.ScrapeConfig.SeedPaths))
	for _, path := range o.cfg.ScrapeConfig.SeedPaths {
		seed, err := urlhandler.ResolveURL(path, base)
		if err != nil {
			o.logger.Warn().Err(err).Str("path", path).Msg("Seed path skipped")
			continue
		}
		seeds = append(seeds, seed)
	}

	links, err := o.aggregator.Discover(ctx, session, seeds)
	if err != nil {
		return nil, err
	}

	if file := o.cfg.ScrapeConfig.DebugLinkFile; file != "" {
		o.dumpLinks(file, links)
	}
	return links, nil
}

// extractEach visits every discovered profile in sorted order. A failing
// profile contributes no record and does not stop the loop.
func (o *Orchestrator) extractEach(ctx context.Context, session browser.Session, links []string, summary *models.RunSummary) []models.PersonRecord {
	records := make([]models.PersonRecord, 0, len(links))
	for i, link := range links {
		if ctx.Err() != nil {
			o.logger.Warn().Int("remaining", len(links)-i).Msg("Run cancelled, stopping extraction")
			summary.FailedItems += len(links) - i
			break
		}

		result := o.extractOne(ctx, session, link)
		if !result.OK() {
			summary.FailedItems++
			o.logger.Error().Err(result.Err).Str("url", link).Msg("Profile extraction failed")
			continue
		}
		records = append(records, *result.Record)
		o.logger.Info().
			Int("done", i+1).
			Int("total", len(links)).
			Str("url", link).
			Dur("took", result.Duration).
			Msg("Profile extracted")
	}
	summary.RecordsFound = len(records)
	return records
}

// extractOne contains every failure mode of a single profile, including a
// panicking parse, inside its result.
func (o *Orchestrator) extractOne(ctx context.Context, session browser.Session, link string) (result models.ScrapeResult) {
	start := time.Now()
	result.ProfileURL = link
	defer func() {
		result.Duration = time.Since(start)
		if r := recover(); r != nil {
			result.Record = nil
			result.Err = fmt.Errorf("extraction panicked: %v", r)
		}
	}()

	result.Record, result.Err = o.extractor.Extract(ctx, session, link)
	return result
}

// finish writes the output, archives the run, and records its terminal
// state. Called on every path out of Run.
func (o *Orchestrator) finish(summary models.RunSummary, records []models.PersonRecord, runErr error) (models.RunSummary, error) {
	summary.FinishedAt = time.Now()
	switch {
	case runErr != nil:
		summary.Status = models.RunStatusFailed
		summary.ErrorSummary = runErr.Error()
	case len(records) == 0:
		summary.Status = models.RunStatusEmpty
	default:
		summary.Status = models.RunStatusCompleted
	}

	if err := o.writer.Write(records); err != nil {
		o.logger.Error().Err(err).Msg("Failed to write output")
		if runErr == nil {
			runErr = err
			summary.Status = models.RunStatusFailed
			summary.ErrorSummary = err.Error()
		}
	}

	if runErr == nil && o.archive != nil {
		o.archiveAndCompare(summary.RunID, summary.StartedAt, records)
	}
	o.recordFinish(summary)

	o.logger.Info().
		Str("run_id", summary.RunID).
		Str("status", string(summary.Status)).
		Int("links", summary.LinksFound).
		Int("records", summary.RecordsFound).
		Int("failed", summary.FailedItems).
		Msg("Scrape run finished")
	return summary, runErr
}

// archiveAndCompare stores the run in the parquet archive and logs how it
// differs from the previous one. Archive problems never fail the run.
func (o *Orchestrator) archiveAndCompare(runID string, startedAt time.Time, records []models.PersonRecord) {
	prevRunID, prevRecords, err := o.archive.LatestRunBefore(runID)
	if err != nil {
		o.logger.Warn().Err(err).Msg("Could not load previous run for comparison")
	}

	if _, err := o.archive.StoreRun(runID, startedAt, records); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to archive run")
		return
	}

	if prevRunID != "" {
		diff := o.runDiff.Diff(prevRunID, prevRecords, records)
		for _, change := range diff.Changed {
			o.logger.Debug().Str("url", change.ProfileURL).Str("diff", change.DiffText).Msg("Record changed since previous run")
		}
	}
}

func (o *Orchestrator) dumpLinks(file string, links []string) {
	data := strings.Join(links, "\n")
	if len(links) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		o.logger.Warn().Err(err).Str("file", file).Msg("Failed to write link dump")
		return
	}
	o.logger.Debug().Str("file", file).Int("links", len(links)).Msg("Link dump written")
}

func (o *Orchestrator) recordStart(summary models.RunSummary) {
	if o.runLog == nil {
		return
	}
	if err := o.runLog.StartRun(summary.RunID, summary.StartedAt); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to record run start")
	}
}

func (o *Orchestrator) recordFinish(summary models.RunSummary) {
	if o.runLog == nil {
		return
	}
	if err := o.runLog.FinishRun(summary); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to record run finish")
	}
}
