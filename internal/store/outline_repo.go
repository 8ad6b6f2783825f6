// Package store persists outline documents in Postgres.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgallion1/pdfoutline/internal/outline"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

var ErrNotFound = sql.ErrNoRows

var schema = []string{`
create table if not exists document_outlines (
  doc_id       text primary key,
  content_hash text not null,
  filename     text not null,
  title        text not null,
  degraded     boolean not null default false,
  document     jsonb not null,
  created_at   timestamptz not null default now(),
  updated_at   timestamptz not null default now()
)`,
	`create index if not exists document_outlines_hash_idx on document_outlines (content_hash)`,
}

// OutlineRow is one stored document outline.
type OutlineRow struct {
	DocID       string
	ContentHash string
	Filename    string
	Degraded    bool
	Document    outline.Document
	UpdatedAt   time.Time
}

type OutlineRepo struct{ DB *sql.DB }

// Open connects to Postgres using the pgx driver.
func Open(ctx context.Context, dsn string) (*OutlineRepo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &OutlineRepo{DB: db}, nil
}

func (r *OutlineRepo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Upsert stores a document outline, replacing any previous row for docID.
func (r *OutlineRepo) Upsert(ctx context.Context, row OutlineRow) error {
	js, err := json.Marshal(row.Document)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	const q = `
insert into document_outlines (doc_id, content_hash, filename, title, degraded, document)
values ($1,$2,$3,$4,$5,$6)
on conflict (doc_id) do update
set content_hash = excluded.content_hash,
    filename = excluded.filename,
    title = excluded.title,
    degraded = excluded.degraded,
    document = excluded.document,
    updated_at = now()`
	_, err = r.DB.ExecContext(ctx, q, row.DocID, row.ContentHash, row.Filename,
		row.Document.ExtractedSection.Title, row.Degraded, js)
	if err != nil {
		return fmt.Errorf("upsert outline %s: %w", row.DocID, err)
	}
	return nil
}

// FindByHash returns the newest non-degraded outline for a content hash.
func (r *OutlineRepo) FindByHash(ctx context.Context, contentHash string) (*OutlineRow, error) {
	const q = `
select doc_id, content_hash, filename, degraded, document, updated_at
from document_outlines
where content_hash = $1 and not degraded
order by updated_at desc
limit 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, contentHash))
}

func (r *OutlineRepo) Get(ctx context.Context, docID string) (*OutlineRow, error) {
	const q = `
select doc_id, content_hash, filename, degraded, document, updated_at
from document_outlines
where doc_id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, docID))
}

// List returns stored outlines, most recently updated first.
func (r *OutlineRepo) List(ctx context.Context, limit int) ([]OutlineRow, error) {
	const q = `
select doc_id, content_hash, filename, degraded, document, updated_at
from document_outlines
order by updated_at desc
limit $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list outlines: %w", err)
	}
	defer rows.Close()

	var out []OutlineRow
	for rows.Next() {
		var (
			row OutlineRow
			js  []byte
		)
		if err := rows.Scan(&row.DocID, &row.ContentHash, &row.Filename, &row.Degraded, &js, &row.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(js, &row.Document); err != nil {
			return nil, fmt.Errorf("decode stored document %s: %w", row.DocID, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Delete removes a stored outline. It reports whether a row existed.
func (r *OutlineRepo) Delete(ctx context.Context, docID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `delete from document_outlines where doc_id = $1`, docID)
	if err != nil {
		return false, fmt.Errorf("delete outline %s: %w", docID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OutlineRepo) Close() error {
	return r.DB.Close()
}

func (r *OutlineRepo) scanOne(row *sql.Row) (*OutlineRow, error) {
	var (
		out OutlineRow
		js  []byte
	)
	if err := row.Scan(&out.DocID, &out.ContentHash, &out.Filename, &out.Degraded, &js, &out.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(js, &out.Document); err != nil {
		return nil, fmt.Errorf("decode stored document %s: %w", out.DocID, err)
	}
	return &out, nil
}
