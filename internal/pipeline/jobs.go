package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// JobStatus represents the state of an outline job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusCollecting JobStatus = "collecting"
	StatusOutlining  JobStatus = "outlining"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusDegraded   JobStatus = "degraded"
	StatusPartial    JobStatus = "partial"
	StatusFailed     JobStatus = "failed"
	StatusDupSkipped JobStatus = "duplicate_skipped"
)

// Job tracks the state of a single document.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	DocID    string    `json:"doc_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Force skips the duplicate check.
	Force bool `json:"-"`

	// Internal: not serialized.
	fileData []byte
	result      *outline.Document
	errors      []string
	duplicateOf string
}

// NewJob creates a queued job for file bytes. The document id defaults to a
// prefix of the content hash.
func NewJob(filename string, data []byte, docID string) *Job {
	now := time.Now()
	hash := ContentHashHex(data)
	if docID == "" {
		docID = hash[:16]
	}
	return &Job{
		ID:          generateULID(),
		DocID:       docID,
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		ContentHash: hash,
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetResult records the finished output document and releases the file bytes.
func (j *Job) SetResult(doc outline.Document) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &doc
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// SetDuplicateOf records the stored document this job duplicates.
func (j *Job) SetDuplicateOf(docID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.duplicateOf = docID
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string            `json:"job_id"`
	DocID       string            `json:"doc_id"`
	Status      JobStatus         `json:"status"`
	Phase       string            `json:"phase"`
	Filename    string            `json:"filename"`
	ContentHash string            `json:"content_hash"`
	DuplicateOf string            `json:"duplicate_of,omitempty"`
	Errors      []string          `json:"errors"`
	Result      *outline.Document `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	return JobSnapshot{
		ID:          j.ID,
		DocID:       j.DocID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		DuplicateOf: j.duplicateOf,
		Errors:      errs,
		Result:      j.result,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
