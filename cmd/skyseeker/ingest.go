package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/skyseeker/internal/bsc5"
	"github.com/litescript/skyseeker/internal/codec"
	"github.com/litescript/skyseeker/internal/config"
	"github.com/litescript/skyseeker/internal/logging"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <bsc5.json> <catalog.bin>",
	Short: "Convert a Yale Bright Star Catalogue JSON export into an encoded catalog",
	Long: `Parse the JSON export of the Yale Bright Star Catalogue (BSC5) and write
the stars as an encoded catalog for --catalog or [catalog] path.

Entries that cannot be converted, including those without a radial
velocity, are skipped with a warning.`,
	Args: cobra.ExactArgs(2),
	RunE: runIngest,
}

func runIngest(_ *cobra.Command, args []string) error {
	level := config.Default().LogLevel()
	if logLevel != "" {
		level = logging.ParseLevel(logLevel)
	}
	log := logging.New(level)

	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open BSC5 export: %w", err)
	}
	defer in.Close()

	stars, err := bsc5.ParseReader(in, log)
	if err != nil {
		return err
	}
	if err := codec.SaveFile(args[1], stars); err != nil {
		return err
	}

	log.Info("Wrote %d stars to %s", len(stars), args[1])
	return nil
}
