package datastore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/config"
	"github.com/aleister1102/kkupeople/internal/models"
)

const runFileExt = ".parquet"

// ArchiveStore keeps one parquet file per scrape run so later runs can be
// compared against earlier ones. The JSON output file is unaffected; the
// archive is additive.
type ArchiveStore struct {
	cfg    config.StorageConfig
	logger zerolog.Logger
}

// NewArchiveStore creates an archive store rooted at the configured base
// path.
func NewArchiveStore(cfg config.StorageConfig, log zerolog.Logger) *ArchiveStore {
	return &ArchiveStore{
		cfg:    cfg,
		logger: log.With().Str("component", "ArchiveStore").Logger(),
	}
}

// StoreRun writes all records of one run to <base>/runs/<runID>.parquet and
// returns the file path.
func (as *ArchiveStore) StoreRun(runID string, scrapedAt time.Time, records []models.PersonRecord) (string, error) {
	if as.cfg.ParquetBasePath == "" {
		return "", fmt.Errorf("parquet base path is not configured")
	}

	runsDir := filepath.Join(as.cfg.ParquetBasePath, "runs")
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory '%s': %w", runsDir, err)
	}

	rows := make([]models.ParquetPersonRecord, 0, len(records))
	millis := scrapedAt.UnixMilli()
	for _, rec := range records {
		rows = append(rows, models.ToParquetPersonRecord(rec, runID, millis))
	}

	filePath := filepath.Join(runsDir, runID+runFileExt)
	if err := as.writeRows(filePath, rows); err != nil {
		return "", err
	}

	as.logger.Info().Str("file", filePath).Int("records", len(rows)).Msg("Run archived")
	return filePath, nil
}

func (as *ArchiveStore) writeRows(filePath string, rows []models.ParquetPersonRecord) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create archive file '%s': %w", filePath, err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[models.ParquetPersonRecord](file, as.compressionOption())
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write archive rows: %w", err)
	}
	return writer.Close()
}

func (as *ArchiveStore) compressionOption() parquet.WriterOption {
	switch strings.ToLower(as.cfg.CompressionCodec) {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "zstd", "":
		return parquet.Compression(&parquet.Zstd)
	default:
		as.logger.Warn().Str("codec", as.cfg.CompressionCodec).Msg("Unknown compression codec, using zstd")
		return parquet.Compression(&parquet.Zstd)
	}
}

// LatestRunBefore returns the records of the newest archived run other than
// currentRunID, with its run ID. Run IDs are timestamp-shaped, so the
// lexicographically largest file name is the newest run. Returns an empty
// run ID when no earlier run exists.
func (as *ArchiveStore) LatestRunBefore(currentRunID string) (string, []models.PersonRecord, error) {
	runsDir := filepath.Join(as.cfg.ParquetBasePath, "runs")
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("failed to list archive directory '%s': %w", runsDir, err)
	}

	var runIDs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, runFileExt) {
			continue
		}
		runID := strings.TrimSuffix(name, runFileExt)
		if runID != currentRunID {
			runIDs = append(runIDs, runID)
		}
	}
	if len(runIDs) == 0 {
		return "", nil, nil
	}
	sort.Strings(runIDs)
	latest := runIDs[len(runIDs)-1]

	rows, err := as.readRun(filepath.Join(runsDir, latest+runFileExt))
	if err != nil {
		return "", nil, err
	}

	records := make([]models.PersonRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.FromParquetPersonRecord(row))
	}
	return latest, records, nil
}

func (as *ArchiveStore) readRun(filePath string) ([]models.ParquetPersonRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file '%s': %w", filePath, err)
	}
	defer file.Close()

	reader := parquet.NewGenericReader[models.ParquetPersonRecord](file)
	defer reader.Close()

	var rows []models.ParquetPersonRecord
	buf := make([]models.ParquetPersonRecord, 128)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read archive file '%s': %w", filePath, err)
		}
	}
	return rows, nil
}
