// Package queue hosts the background audit writer.
package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/api/metrics"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// AuditInserter is the persistence half of the audit ledger.
type AuditInserter interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// AuditWriter decouples audit persistence from the request path: Record
// enqueues and returns immediately, a small worker pool drains the channel.
// A full buffer drops the entry with a warning rather than stalling the
// mutating operation it annotates.
type AuditWriter struct {
	entries chan domain.AuditEntry
	repo    AuditInserter
	log     zerolog.Logger
}

// NewAuditWriter creates a writer with numWorkers draining goroutines.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditWriter(numWorkers int, repo AuditInserter, log zerolog.Logger) *AuditWriter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &AuditWriter{
		entries: make(chan domain.AuditEntry, channelBuffer),
		repo:    repo,
		log:     log,
	}
	for i := 0; i < numWorkers; i++ {
		go w.runWorker()
	}
	return w
}

// Record implements ports.AuditLog. The caller's context only gates the
// enqueue; persistence runs on the workers' own deadline so an entry is not
// lost when the originating request finishes first.
func (w *AuditWriter) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	select {
	case w.entries <- entry:
	default:
		metrics.AuditDroppedTotal.Inc()
		w.log.Warn().
			Str("action", entry.Action).
			Int64("user_id", entry.UserID).
			Msg("audit buffer full, entry dropped")
	}
}

// Close stops intake; queued entries are still drained by the workers.
func (w *AuditWriter) Close() {
	close(w.entries)
}

func (w *AuditWriter) runWorker() {
	for entry := range w.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := w.repo.Insert(ctx, entry)
		cancel()
		if err != nil {
			metrics.AuditErrorsTotal.Inc()
			w.log.Error().Err(err).
				Str("action", entry.Action).
				Int64("user_id", entry.UserID).
				Msg("audit write failed")
		}
	}
}
