package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/spf13/cobra"
)

func extractCmd(cfg config.Config, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the outline document for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			doc, err := newWorker(cfg, nil, nil, log).Outline(cmd.Context(), filepath.Base(args[0]), data)
			if err != nil {
				return err
			}
			b, err := doc.Marshal()
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
