package differ

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/aleister1102/kkupeople/internal/models"
)

// RecordChange describes one profile whose content differs between two
// runs. DiffText is a compact human-readable rendering of the change.
type RecordChange struct {
	ProfileURL string
	DiffText   string
}

// RunDiff summarizes how one run's records differ from an earlier run's.
// Profiles are keyed by their canonical URL.
type RunDiff struct {
	PreviousRunID string
	Added         []string
	Removed       []string
	Changed       []RecordChange
	Unchanged     int
}

// HasChanges reports whether anything differs between the two runs.
func (rd RunDiff) HasChanges() bool {
	return len(rd.Added) > 0 || len(rd.Removed) > 0 || len(rd.Changed) > 0
}

// RunDiffer compares two scrape runs record by record.
type RunDiffer struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	logger zerolog.Logger
}

// NewRunDiffer creates a run differ.
func NewRunDiffer(log zerolog.Logger) *RunDiffer {
	return &RunDiffer{
		dmp:    diffmatchpatch.New(),
		logger: log.With().Str("component", "RunDiffer").Logger(),
	}
}

// Diff compares current against previous. Added and Removed are sorted
// profile URLs; Changed carries a semantic text diff of each modified
// record.
func (rd *RunDiffer) Diff(previousRunID string, previous, current []models.PersonRecord) RunDiff {
	prevByURL := indexByURL(previous)
	currByURL := indexByURL(current)

	diff := RunDiff{PreviousRunID: previousRunID}

	for url, curr := range currByURL {
		prev, existed := prevByURL[url]
		if !existed {
			diff.Added = append(diff.Added, url)
			continue
		}
		if prev == curr {
			diff.Unchanged++
			continue
		}
		diff.Changed = append(diff.Changed, RecordChange{
			ProfileURL: url,
			DiffText:   rd.renderChange(prev, curr),
		})
	}
	for url := range prevByURL {
		if _, exists := currByURL[url]; !exists {
			diff.Removed = append(diff.Removed, url)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Slice(diff.Changed, func(i, j int) bool {
		return diff.Changed[i].ProfileURL < diff.Changed[j].ProfileURL
	})

	rd.logger.Info().
		Str("previous_run", previousRunID).
		Int("added", len(diff.Added)).
		Int("removed", len(diff.Removed)).
		Int("changed", len(diff.Changed)).
		Int("unchanged", diff.Unchanged).
		Msg("Run comparison completed")
	return diff
}

func (rd *RunDiffer) renderChange(prev, curr models.PersonRecord) string {
	diffs := rd.dmp.DiffMain(flattenRecord(prev), flattenRecord(curr), false)
	diffs = rd.dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString("+{" + d.Text + "}")
		case diffmatchpatch.DiffDelete:
			sb.WriteString("-{" + d.Text + "}")
		}
	}
	return sb.String()
}

// flattenRecord renders a record as one field-per-line text block, the unit
// the text diff operates on.
func flattenRecord(rec models.PersonRecord) string {
	return strings.Join([]string{
		"name_th: " + rec.NameTH,
		"name_en: " + rec.NameEN,
		"position: " + rec.Position,
		"email: " + rec.Email,
		"photo_url: " + rec.PhotoURL,
		"info: " + rec.Info,
		"education: " + rec.Education,
	}, "\n")
}

func indexByURL(records []models.PersonRecord) map[string]models.PersonRecord {
	indexed := make(map[string]models.PersonRecord, len(records))
	for _, rec := range records {
		indexed[rec.ProfileURL] = rec
	}
	return indexed
}
