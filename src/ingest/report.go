package ingest

import (
	"time"

	"github.com/google/uuid"
)

type RowError struct {
	Row    int    `json:"row"`
	Key    string `json:"key,omitempty"`
	Reason string `json:"reason"`
}

// Report is the outcome of one ingestion run.
type Report struct {
	RunID      string     `json:"run_id"`
	Dialect    string     `json:"dialect"`
	Total      int        `json:"total"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Skipped    int        `json:"skipped"`
	Errors     []RowError `json:"errors"`
	Aborted    string     `json:"aborted,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

func newReport(dialect string, total int) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Dialect:   dialect,
		Total:     total,
		Errors:    []RowError{},
		StartedAt: time.Now().UTC(),
	}
}

// Succeeded counts rows that were stored.
func (r *Report) Succeeded() int {
	return r.Created + r.Updated
}

// Processed counts rows that reached an outcome.
func (r *Report) Processed() int {
	return r.Created + r.Updated + r.Skipped
}

func (r *Report) stored(created bool) {
	if created {
		r.Created++
	} else {
		r.Updated++
	}
}

func (r *Report) skip(row int, key string, reason string) {
	r.Skipped++
	r.Errors = append(r.Errors, RowError{Row: row, Key: key, Reason: reason})
}

func (r *Report) finish() {
	r.FinishedAt = time.Now().UTC()
}
