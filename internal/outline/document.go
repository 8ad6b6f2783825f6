package outline

import (
	"bytes"
	"encoding/json"
	"time"
)

// Default labels stamped into every output document.
const (
	DefaultPersona     = "N/A (Challenge 1A)"
	DefaultJobToBeDone = "Extract structured outline (title, H1, H2, H3)"
)

// Metadata describes where and when an outline was produced.
type Metadata struct {
	InputDocument       string `json:"input_document"`
	ProcessingTimestamp string `json:"processing_timestamp"`
	Persona             string `json:"persona"`
	JobToBeDone         string `json:"job_to_be_done"`
}

// Document is the persisted form of one document's outline.
type Document struct {
	Metadata         Metadata `json:"metadata"`
	ExtractedSection Result   `json:"extracted_section"`
}

// Labels are the fixed persona and job descriptions written to Metadata.
type Labels struct {
	Persona     string
	JobToBeDone string
}

// NewDocument wraps res with metadata. Empty labels fall back to defaults.
func NewDocument(filename string, res Result, labels Labels, now time.Time) Document {
	if labels.Persona == "" {
		labels.Persona = DefaultPersona
	}
	if labels.JobToBeDone == "" {
		labels.JobToBeDone = DefaultJobToBeDone
	}
	if res.Outline == nil {
		res.Outline = []Entry{}
	}
	return Document{
		Metadata: Metadata{
			InputDocument:       filename,
			ProcessingTimestamp: now.Format(time.RFC3339Nano),
			Persona:             labels.Persona,
			JobToBeDone:         labels.JobToBeDone,
		},
		ExtractedSection: res,
	}
}

// Marshal encodes d with four-space indentation, leaving non-ASCII and HTML
// characters unescaped.
func (d Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
