package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/config"
	"github.com/aleister1102/kkupeople/internal/models"
)

// Writer emits the final record array as JSON, to the configured file and
// echoed to a stream (stdout in the binary). The output is always a valid
// JSON array; a failed run produces an empty one, never an error payload.
type Writer struct {
	cfg    config.OutputConfig
	echo   io.Writer
	logger zerolog.Logger
}

// NewWriter builds a Writer echoing to echo. Pass os.Stdout in production.
func NewWriter(cfg config.OutputConfig, echo io.Writer, log zerolog.Logger) *Writer {
	return &Writer{
		cfg:    cfg,
		echo:   echo,
		logger: log.With().Str("component", "Output").Logger(),
	}
}

// Write serializes records as a pretty-printed JSON array. A nil slice is
// written as an empty array.
func (w *Writer) Write(records []models.PersonRecord) error {
	if records == nil {
		records = []models.PersonRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	data = append(data, '\n')

	if w.cfg.File != "" {
		if dir := filepath.Dir(w.cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
			}
		}
		if err := os.WriteFile(w.cfg.File, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file '%s': %w", w.cfg.File, err)
		}
		w.logger.Info().Str("file", w.cfg.File).Int("records", len(records)).Msg("Output file written")
	}

	if w.echo != nil {
		if _, err := w.echo.Write(data); err != nil {
			return fmt.Errorf("failed to echo output: %w", err)
		}
	}
	return nil
}

// WriteEmpty emits an empty array. Used on any top-level failure so
// downstream consumers always receive valid JSON.
func (w *Writer) WriteEmpty() error {
	return w.Write(nil)
}
