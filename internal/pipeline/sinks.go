package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/dgallion1/pdfoutline/internal/pathstore"
	"github.com/dgallion1/pdfoutline/internal/store"
)

// Record is one finished outline ready to persist.
type Record struct {
	DocID       string
	ContentHash string
	Filename    string
	Document    outline.Document
	CreatedAt   time.Time
}

// Degraded reports whether the record holds a degraded outline.
func (r Record) Degraded() bool {
	return r.Document.ExtractedSection.IsDegraded()
}

// Sink persists outline records and answers dedup lookups.
type Sink interface {
	Name() string
	// Lookup returns the id of a stored, non-degraded outline with the same
	// content hash, or "" if there is none.
	Lookup(ctx context.Context, contentHash string) (string, error)
	Store(ctx context.Context, rec Record) error
}

// PathstoreSink publishes outlines to pathstore.
type PathstoreSink struct {
	Client *pathstore.Client
}

func (s *PathstoreSink) Name() string { return "pathstore" }

func (s *PathstoreSink) Lookup(ctx context.Context, contentHash string) (string, error) {
	children, err := s.Client.ListChildren(ctx, pathstore.HashPrefix(contentHash), 1)
	if err != nil {
		return "", err
	}
	if len(children) == 0 {
		return "", nil
	}
	return lastSegment(children[0].Key), nil
}

// Store writes the outline node, then the meta node, then the hash index.
// Degraded outlines are not indexed by hash so a later upload retries them.
func (s *PathstoreSink) Store(ctx context.Context, rec Record) error {
	source := "pdfoutline:" + rec.DocID
	err := s.Client.PutNode(ctx, pathstore.OutlineKey(rec.DocID), pathstore.NodeRequest{
		Value:      rec.Document,
		MemoryType: "semantic",
		Salience:   0.5,
		Source:     source,
	})
	if err != nil {
		return err
	}

	err = s.Client.PutNode(ctx, pathstore.MetaKey(rec.DocID), pathstore.NodeRequest{
		Value: map[string]any{
			"filename":      rec.Filename,
			"title":         rec.Document.ExtractedSection.Title,
			"content_hash":  rec.ContentHash,
			"outline_count": len(rec.Document.ExtractedSection.Outline),
			"degraded":      rec.Degraded(),
			"created_at":    rec.CreatedAt.Format(time.RFC3339),
		},
		MemoryType: "metacognitive",
		Salience:   0.5,
		Source:     source,
	})
	if err != nil {
		return err
	}

	if rec.Degraded() {
		return nil
	}
	return s.Client.PutNode(ctx, pathstore.HashKey(rec.ContentHash, rec.DocID), pathstore.NodeRequest{
		Value: map[string]any{
			"filename":   rec.Filename,
			"created_at": rec.CreatedAt.Format(time.RFC3339),
		},
		MemoryType: "metacognitive",
		Salience:   0.1,
		Source:     source,
	})
}

// PostgresSink stores outlines in the document_outlines table.
type PostgresSink struct {
	Repo *store.OutlineRepo
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Lookup(ctx context.Context, contentHash string) (string, error) {
	row, err := s.Repo.FindByHash(ctx, contentHash)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find by hash: %w", err)
	}
	return row.DocID, nil
}

func (s *PostgresSink) Store(ctx context.Context, rec Record) error {
	return s.Repo.Upsert(ctx, store.OutlineRow{
		DocID:       rec.DocID,
		ContentHash: rec.ContentHash,
		Filename:    rec.Filename,
		Degraded:    rec.Degraded(),
		Document:    rec.Document,
	})
}

// lastSegment returns the final component of a pathstore key, which the
// server may report with either "/" or "." separators.
func lastSegment(key string) string {
	if i := strings.LastIndexAny(key, "/."); i >= 0 {
		return key[i+1:]
	}
	return key
}
