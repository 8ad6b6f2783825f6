package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/pdfoutline/internal/pathstore"
	"github.com/dgallion1/pdfoutline/internal/store"
	"github.com/go-chi/chi/v5"
)

const listLimit = 200

// documentSummary is one row of GET /api/documents.
type documentSummary struct {
	DocID       string          `json:"doc_id"`
	Filename    string          `json:"filename,omitempty"`
	Title       string          `json:"title,omitempty"`
	ContentHash string          `json:"content_hash,omitempty"`
	Degraded    bool            `json:"degraded"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
	Meta        json.RawMessage `json:"meta,omitempty"`
}

func (s *Server) hasDocumentStore() bool {
	return s.ps != nil || s.repo != nil
}

// handleListDocuments lists stored outlines, preferring pathstore.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if !s.hasDocumentStore() {
		jsonError(w, "no document store configured", http.StatusServiceUnavailable)
		return
	}

	docs := []documentSummary{}
	if s.ps != nil {
		children, err := s.ps.ListChildren(r.Context(), pathstore.DocumentsPrefix, listLimit)
		if err != nil {
			jsonError(w, "failed to list documents: "+err.Error(), http.StatusBadGateway)
			return
		}
		for _, child := range children {
			docID, ok := metaDocID(child.Key)
			if !ok {
				continue
			}
			sum := documentSummary{DocID: docID, Meta: child.Value}
			var meta struct {
				Filename    string `json:"filename"`
				Title       string `json:"title"`
				ContentHash string `json:"content_hash"`
				Degraded    bool   `json:"degraded"`
			}
			if json.Unmarshal(child.Value, &meta) == nil {
				sum.Filename, sum.Title = meta.Filename, meta.Title
				sum.ContentHash, sum.Degraded = meta.ContentHash, meta.Degraded
			}
			docs = append(docs, sum)
		}
	} else {
		rows, err := s.repo.List(r.Context(), listLimit)
		if err != nil {
			jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
			return
		}
		for _, row := range rows {
			updated := row.UpdatedAt
			docs = append(docs, documentSummary{
				DocID:       row.DocID,
				Filename:    row.Filename,
				Title:       row.Document.ExtractedSection.Title,
				ContentHash: row.ContentHash,
				Degraded:    row.Degraded,
				UpdatedAt:   &updated,
			})
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// handleGetDocument returns the stored output document for docID.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if !s.hasDocumentStore() {
		jsonError(w, "no document store configured", http.StatusServiceUnavailable)
		return
	}
	docID := chi.URLParam(r, "docID")
	ctx := r.Context()

	if s.ps != nil {
		node, err := s.ps.GetNode(ctx, pathstore.OutlineKey(docID))
		if err != nil {
			jsonError(w, "failed to read document: "+err.Error(), http.StatusBadGateway)
			return
		}
		if node != nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write(node.Value)
			return
		}
	}
	if s.repo != nil {
		row, err := s.repo.Get(ctx, docID)
		if err == nil {
			writeJSON(w, http.StatusOK, row.Document)
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			jsonError(w, "failed to read document: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}
	jsonError(w, "document not found", http.StatusNotFound)
}

// handleDeleteDocument removes a document from every configured store.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if !s.hasDocumentStore() {
		jsonError(w, "no document store configured", http.StatusServiceUnavailable)
		return
	}
	docID := chi.URLParam(r, "docID")
	ctx := r.Context()
	resp := map[string]any{"doc_id": docID}

	if s.ps != nil {
		deleted, err := deleteFromPathstore(ctx, s.ps, docID)
		if err != nil {
			s.log.Error("pathstore delete failed", "doc_id", docID, "error", err)
			jsonError(w, "failed to delete document: "+err.Error(), http.StatusBadGateway)
			return
		}
		resp["pathstore_deleted"] = deleted
	}
	if s.repo != nil {
		deleted, err := s.repo.Delete(ctx, docID)
		if err != nil {
			s.log.Error("postgres delete failed", "doc_id", docID, "error", err)
			jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
			return
		}
		resp["postgres_deleted"] = deleted
	}

	writeJSON(w, http.StatusOK, resp)
}

// deleteFromPathstore removes the document subtree and its hash index entry.
// It reports whether the document existed.
func deleteFromPathstore(ctx context.Context, ps *pathstore.Client, docID string) (bool, error) {
	meta, err := ps.GetNode(ctx, pathstore.MetaKey(docID))
	if err != nil {
		return false, err
	}
	if meta == nil {
		return false, nil
	}

	var m struct {
		ContentHash string `json:"content_hash"`
	}
	_ = json.Unmarshal(meta.Value, &m)

	if err := ps.DeleteNode(ctx, pathstore.DocumentKey(docID), true); err != nil {
		return false, err
	}
	if m.ContentHash != "" {
		if err := ps.DeleteNode(ctx, pathstore.HashKey(m.ContentHash, docID), false); err != nil {
			return true, err
		}
	}
	return true, nil
}

// metaDocID extracts the document id from a ".../{docID}/meta" key. The
// server may separate segments with "/" or ".".
func metaDocID(key string) (string, bool) {
	for _, sep := range []string{"/", "."} {
		if rest, ok := strings.CutSuffix(key, sep+"meta"); ok {
			if i := strings.LastIndexAny(rest, "/."); i >= 0 {
				return rest[i+1:], true
			}
			return rest, true
		}
	}
	return "", false
}
