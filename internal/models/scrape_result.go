package models

import "time"

// ScrapeResult is the per-profile outcome collected by the orchestrator.
// A failed profile carries its reason here instead of aborting the run;
// it simply contributes no record to the output array.
type ScrapeResult struct {
	ProfileURL string
	Record     *PersonRecord
	Err        error
	Duration   time.Duration
}

// OK reports whether this profile produced a record.
func (sr ScrapeResult) OK() bool {
	return sr.Err == nil && sr.Record != nil
}

// RunStatus describes how a whole run ended. The JSON output cannot
// distinguish "no profiles exist" from "discovery blew up" (both are an
// empty array); the run log keeps that distinction.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusEmpty     RunStatus = "EMPTY"
	RunStatusFailed    RunStatus = "FAILED"
)

// RunSummary aggregates one run for the run log and diagnostics.
type RunSummary struct {
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time
	Status       RunStatus
	LinksFound   int
	RecordsFound int
	FailedItems  int
	ErrorSummary string
}
