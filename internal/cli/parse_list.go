package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Roland-02/List2Letterboxd/internal/config"
	"github.com/Roland-02/List2Letterboxd/internal/entities"
	"github.com/Roland-02/List2Letterboxd/internal/exporters"
	"github.com/Roland-02/List2Letterboxd/internal/parsers"
	"github.com/Roland-02/List2Letterboxd/internal/services"
)

// ParseListCommand runs the pipeline once over a film list file and writes
// the Letterboxd import CSV.
type ParseListCommand struct {
	File              string
	Output            string
	MatchURL          string
	Language          string
	LegacyInlineSplit bool
	DryRun            bool
	Verbose           bool

	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewParseListCommand(cfg *config.Config) *ParseListCommand {
	return &ParseListCommand{
		cfg:    cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (cmd *ParseListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("parse-list", flag.ContinueOnError)

	fs.StringVar(&cmd.File, "file", "", "Film list to read, or - for stdin (required)")
	fs.StringVar(&cmd.Output, "output", exporters.LetterboxdFileName, "CSV file to write, or - for stdout")
	fs.StringVar(&cmd.MatchURL, "match-url", "", "Match service base URL (overrides MATCH_SERVICE_URL)")
	fs.StringVar(&cmd.Language, "language", "", "Language for matched titles (overrides MATCH_LANGUAGE)")
	fs.BoolVar(&cmd.LegacyInlineSplit, "legacy-inline-split", cmd.cfg.Parser.LegacyInlineSplit, "Also split lines after \"] -\"")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse and match, but do not write the CSV")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every entry")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s parse-list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Parse a free-text film list, match it against TMDB and write a Letterboxd import CSV.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s parse-list -file watched.md\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s parse-list -file watched.md -output import.csv -match-url http://localhost:8188\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  pbpaste | %s parse-list -file - -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("file is required")
	}

	return nil
}

func (cmd *ParseListCommand) Run(ctx context.Context) error {
	text, err := cmd.readInput()
	if err != nil {
		return err
	}

	backend, err := services.NewMatchBackend(cmd.cfg.Match, cmd.cfg.TMDB, cmd.cfg.Cache, cmd.MatchURL)
	if err != nil {
		return fmt.Errorf("failed to set up matching: %w", err)
	}
	defer backend.Close()

	exporter := exporters.NewLetterboxdCSV(cmd.cfg.Export.BreakMarker)
	service := services.NewImportService(parsers.Options{}, backend.Merger(cmd.cfg.Match), nil, exporter)

	entries := service.ParseWith(text, parsers.Options{LegacyInlineSplit: cmd.LegacyInlineSplit})
	cmd.printf("Parsed %d entries\n", len(entries))

	cmd.printf("Matching against: %s\n", backend.Description)
	outcome, matchErr := service.Match(ctx, entries, cmd.Language)
	if matchErr != nil {
		cmd.printf("⚠️  %s\n", outcome.Warning)
	}

	s := outcome.Summary
	cmd.printf("\n=== Match Results ===\n")
	cmd.printf("Resolved: %d\n", s.Resolved)
	cmd.printf("Unresolved: %d\n", s.Unresolved)
	cmd.printf("Dropped (not films): %d\n", s.Dropped)

	if cmd.Verbose {
		cmd.printEntries(outcome.Entries)
	}

	if cmd.DryRun {
		cmd.printf("\nDry run, nothing written\n")
		return nil
	}

	result, err := cmd.writeOutput(exporter, outcome.Entries)
	if err != nil {
		return err
	}

	if cmd.Output != "-" {
		cmd.printf("\n✅ Wrote %d rows to %s", result.RowsWritten, cmd.Output)
		if result.EntriesSkipped > 0 {
			cmd.printf(" (%d unresolved entries skipped)", result.EntriesSkipped)
		}
		cmd.printf("\n")
	}
	return nil
}

func (cmd *ParseListCommand) readInput() (string, error) {
	if cmd.File == "-" {
		data, err := io.ReadAll(cmd.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", cmd.File, err)
	}
	return string(data), nil
}

func (cmd *ParseListCommand) writeOutput(exporter exporters.EntryExporter, entries []entities.Entry) (exporters.ExportResult, error) {
	if cmd.Output == "-" {
		return exporter.Encode(cmd.stdout, entries)
	}
	return exporters.ExportToFile(cmd.Output, exporter, entries)
}

func (cmd *ParseListCommand) printEntries(entries []entities.Entry) {
	cmd.printf("\n=== Entries ===\n")
	for i, e := range entries {
		status := "unresolved"
		if e.MatchedID != nil {
			status = fmt.Sprintf("tmdb:%d", *e.MatchedID)
		}
		rating := "-"
		if e.Rating != nil {
			rating = fmt.Sprintf("%g", *e.Rating)
		}
		cmd.printf("%d. %s [%s] rating %s", i+1, e.Title, status, rating)
		if len(e.Candidates) > 1 {
			cmd.printf(" (%d candidates)", len(e.Candidates))
		}
		cmd.printf("\n")
	}
}

// printf writes progress to stdout, or to stderr when stdout carries the CSV.
func (cmd *ParseListCommand) printf(format string, args ...any) {
	out := cmd.stdout
	if cmd.Output == "-" && !cmd.DryRun {
		out = cmd.stderr
	}
	fmt.Fprintf(out, format, args...)
}
