package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/dgallion1/pdfoutline/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	sinks  []Sink
	stats  *Stats
	log    *slog.Logger
	opts   parser.Options
	labels outline.Labels

	maxConcurrentStore int
}

func NewWorker(sinks []Sink, stats *Stats, log *slog.Logger, opts parser.Options, labels outline.Labels, maxStore int) *Worker {
	if maxStore <= 0 {
		maxStore = 1
	}
	return &Worker{
		sinks:              sinks,
		stats:              stats,
		log:                log,
		opts:               opts,
		labels:             labels,
		maxConcurrentStore: maxStore,
	}
}

// Outline renders one file and builds its output document. A document that
// cannot be rendered still yields a degraded document; only an unsupported
// file type is an error.
func (w *Worker) Outline(ctx context.Context, filename string, data []byte) (outline.Document, error) {
	c, err := parser.ForFile(filename, w.opts)
	if err != nil {
		return outline.Document{}, err
	}

	start := time.Now()
	res := outline.Run(ctx, parser.Source(c, data, filename), w.log.With("filename", filename))
	if w.stats != nil {
		w.stats.Record(time.Since(start), res.IsDegraded())
	}
	return outline.NewDocument(filename, res, w.labels, time.Now()), nil
}

// Process runs the full outline pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Dedup check
	job.SetStatus(StatusCollecting, "dedup")
	if !job.Force {
		if existing := w.findDuplicate(ctx, job.ContentHash, log); existing != "" {
			log.Info("duplicate document, skipping", "existing_doc_id", existing)
			job.SetDuplicateOf(existing)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Collect spans and build the outline
	job.SetStatus(StatusOutlining, "outlining")
	doc, err := w.Outline(ctx, job.Filename, job.FileData())
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "collecting")
		return
	}
	job.SetResult(doc)
	degraded := doc.ExtractedSection.IsDegraded()
	if degraded {
		job.AddError("document could not be rendered")
	}
	log.Info("outline complete",
		"title", doc.ExtractedSection.Title,
		"entries", len(doc.ExtractedSection.Outline),
		"degraded", degraded,
	)

	// Phase 3: Persist to every configured sink.
	stored, failed := 0, 0
	if len(w.sinks) > 0 {
		job.SetStatus(StatusStoring, "storing")
		stored, failed = w.store(ctx, job, Record{
			DocID:       job.DocID,
			ContentHash: job.ContentHash,
			Filename:    job.Filename,
			Document:    doc,
			CreatedAt:   job.CreatedAt,
		}, log)
	}

	switch {
	case failed > 0 && stored == 0:
		job.SetStatus(StatusFailed, "storing")
	case failed > 0:
		job.SetStatus(StatusPartial, "done")
	case degraded:
		job.SetStatus(StatusDegraded, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
}

// store writes rec to all sinks with bounded concurrency and retry, and
// returns how many sinks succeeded and failed.
func (w *Worker) store(ctx context.Context, job *Job, rec Record, log *slog.Logger) (int, int) {
	type storeResult struct {
		sink string
		err  error
	}
	results := make(chan storeResult, len(w.sinks))
	sem := make(chan struct{}, w.maxConcurrentStore)

	for _, sink := range w.sinks {
		sem <- struct{}{}
		go func(s Sink) {
			defer func() { <-sem }()
			err := withRetry(ctx, func() error {
				err := s.Store(ctx, rec)
				if err != nil && IsRetryable(err) {
					log.Warn("retryable store error", "sink", s.Name(), "error", err)
				}
				return err
			})
			results <- storeResult{sink: s.Name(), err: err}
		}(sink)
	}

	stored, failed := 0, 0
	for range w.sinks {
		r := <-results
		if r.err != nil {
			log.Error("store failed", "sink", r.sink, "error", r.err)
			job.AddError(fmt.Sprintf("store %s: %s", r.sink, r.err))
			failed++
			continue
		}
		stored++
	}
	log.Info("storage complete", "stored", stored, "failed", failed)
	return stored, failed
}

// findDuplicate asks each sink for an existing outline of the same content.
// Lookup failures are logged and treated as a miss.
func (w *Worker) findDuplicate(ctx context.Context, contentHash string, log *slog.Logger) string {
	for _, s := range w.sinks {
		docID, err := s.Lookup(ctx, contentHash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "sink", s.Name(), "error", err)
			continue
		}
		if docID != "" {
			return docID
		}
	}
	return ""
}
