package main

import (
	"log/slog"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
	"github.com/spf13/cobra"
)

func batchCmd(cfg config.Config, log *slog.Logger) *cobra.Command {
	var in, out string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Outline every supported file in a directory and write one JSON file each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := newWorker(cfg, nil, pipeline.NewStats(0), log)
			_, err := pipeline.RunBatch(cmd.Context(), in, out, workers, w, log)
			return err
		},
	}
	cmd.Flags().StringVar(&in, "in", cfg.InputDir, "input directory")
	cmd.Flags().StringVar(&out, "out", cfg.OutputDir, "output directory")
	cmd.Flags().IntVar(&workers, "workers", cfg.WorkerCount, "documents processed concurrently")
	return cmd
}
