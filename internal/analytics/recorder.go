// Package analytics provides the fire-and-forget search log sink.
package analytics

import (
	"context"
)

// Recorder is the analytics sink the host wires into the search engine.
// LogSearch failures must never surface to search callers.
type Recorder interface {
	// LogSearch records one executed search. clickedTipID is 0 when no
	// result was clicked.
	LogSearch(ctx context.Context, query string, resultCount, clickedTipID int) error
	Close() error
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) LogSearch(context.Context, string, int, int) error { return nil }
func (NopRecorder) Close() error                                     { return nil }
