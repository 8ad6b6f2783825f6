package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/dgallion1/pdfoutline/internal/parser"
)

// BatchItem is the outcome for one input file.
type BatchItem struct {
	Filename string `json:"filename"`
	Output   string `json:"output,omitempty"`
	Title    string `json:"title"`
	Entries  int    `json:"entries"`
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
}

// BatchReport summarises a batch run. Items are in input filename order.
type BatchReport struct {
	Items    []BatchItem   `json:"items"`
	Written  int           `json:"written"`
	Degraded int           `json:"degraded"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// DiscoverInputs lists the supported files directly inside dir, sorted by name.
func DiscoverInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// OutputName maps an input filename to its JSON output name.
func OutputName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".json"
}

// RunBatch outlines every supported file in inputDir and writes one JSON
// document per file into outputDir, using up to workers goroutines. A file
// that cannot be read or rendered still gets a degraded document. Write
// failures are recorded per file and never stop the batch; only an
// unreadable input dir or an uncreatable output dir is an error.
func RunBatch(ctx context.Context, inputDir, outputDir string, workers int, w *Worker, log *slog.Logger) (BatchReport, error) {
	start := time.Now()
	names, err := DiscoverInputs(inputDir)
	if err != nil {
		return BatchReport{}, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return BatchReport{}, fmt.Errorf("create output dir: %w", err)
	}
	if workers <= 0 {
		workers = 1
	}
	log.Info("batch started", "input_dir", inputDir, "output_dir", outputDir, "files", len(names), "workers", workers)

	items := make([]BatchItem, len(names))
	idx := make(chan int)
	var wg sync.WaitGroup
	for range min(workers, max(len(names), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				items[i] = w.outlineFile(ctx, inputDir, outputDir, names[i], log)
			}
		}()
	}
	for i := range names {
		idx <- i
	}
	close(idx)
	wg.Wait()

	report := BatchReport{Items: items}
	for _, it := range items {
		if it.Error != "" {
			report.Failed++
			continue
		}
		report.Written++
		if it.Degraded {
			report.Degraded++
		}
	}
	report.Duration = time.Since(start)
	log.Info("batch finished",
		"written", report.Written,
		"degraded", report.Degraded,
		"failed", report.Failed,
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, nil
}

func (w *Worker) outlineFile(ctx context.Context, inputDir, outputDir, name string, log *slog.Logger) BatchItem {
	log = log.With("filename", name)
	item := BatchItem{Filename: name}

	var doc outline.Document
	data, err := os.ReadFile(filepath.Join(inputDir, name))
	if err != nil {
		log.Error("read input failed", "error", err)
		doc = outline.NewDocument(name, outline.Degraded(), w.labels, time.Now())
	} else if doc, err = w.Outline(ctx, name, data); err != nil {
		log.Error("outline failed", "error", err)
		doc = outline.NewDocument(name, outline.Degraded(), w.labels, time.Now())
	}
	item.Title = doc.ExtractedSection.Title
	item.Entries = len(doc.ExtractedSection.Outline)
	item.Degraded = doc.ExtractedSection.IsDegraded()

	out := filepath.Join(outputDir, OutputName(name))
	if err := writeDocument(out, doc); err != nil {
		log.Error("write output failed", "output", out, "error", err)
		item.Error = err.Error()
		return item
	}
	item.Output = out
	log.Info("outline written", "output", out, "entries", item.Entries, "degraded", item.Degraded)
	return item
}

func writeDocument(path string, doc outline.Document) error {
	b, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
