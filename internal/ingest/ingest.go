// Package ingest discovers books on Open Library and writes them into the
// catalog.
package ingest

import (
	"time"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Run summarizes one ingestion pass.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	Status        string
	Subjects      []string
	BooksFetched  int
	BooksUpserted int
	BooksSkipped  int
	Error         string
}
