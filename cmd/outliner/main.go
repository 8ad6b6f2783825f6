package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/dgallion1/pdfoutline/internal/parser"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
	"github.com/spf13/cobra"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "outliner",
		Short:         "Extract a title and H1-H3 outline from documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(batchCmd(cfg, log), serveCmd(cfg, log), extractCmd(cfg, log))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newWorker builds a worker from configuration with the given sinks.
func newWorker(cfg config.Config, sinks []pipeline.Sink, stats *pipeline.Stats, log *slog.Logger) *pipeline.Worker {
	opts := parser.Options{
		FallbackPdftotext: cfg.PDFFallbackPdftotext,
		PdftotextBin:      cfg.PdftotextBin,
	}
	labels := outline.Labels{Persona: cfg.Persona, JobToBeDone: cfg.JobToBeDone}
	return pipeline.NewWorker(sinks, stats, log, opts, labels, cfg.MaxConcurrentStore)
}
