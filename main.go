package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yargevad/filepathx"

	"github.com/rickbassham/fitsinfo/inspect"
)

var version = "0.1.0"

const (
	exitFatal    = 1
	exitBadFlags = 2
)

var (
	extension int
	record    string
	useCoords bool
	flat      bool
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "fitsinfo [flags] [file|glob ...]",
	Short: "Inspect the HDUs of FITS files",
	Long: `fitsinfo prints a summary of every HDU in the given FITS files, or reads
selected header records from one extension.

Without -e/--extension each file's HDUs are summarized: index, name, type,
card count and data shape. With it, only that extension's header is read;
-r/--record picks individual records, and -c/--coords reads RA and DEC as
sexagesimal values and prints them as decimal degrees.

Files are given as paths or glob patterns; with no arguments *.fits and
*.fits.gz in the current directory are used.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().IntVarP(&extension, "extension", "e", 0, "extension (HDU index) to read; summary mode if omitted")
	rootCmd.Flags().StringVarP(&record, "record", "r", "", "comma-separated header record name(s) to look up")
	rootCmd.Flags().BoolVarP(&useCoords, "coords", "c", false, "treat RA/DEC as sexagesimal, print decimal degrees")
	rootCmd.Flags().BoolVarP(&flat, "flat", "f", false, "one line per field instead of grouped output")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFatal)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(logLevel)

	records := splitRecords(record)
	hasExt := cmd.Flags().Changed("extension")

	if !hasExt && len(records) > 1 {
		fmt.Fprintln(os.Stderr, "multiple records require -e/--extension")
		os.Exit(exitBadFlags)
	}

	if hasExt && useCoords && len(records) > 0 {
		fmt.Fprintln(os.Stderr, "-c/--coords reads RA and DEC itself; drop -r/--record")
		os.Exit(exitBadFlags)
	}

	files, err := resolve(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		logger.Warn().Msg("no files matched")
		return nil
	}

	ins := inspect.New(os.Stdout, logger)

	if !hasExt {
		var rec string
		if len(records) == 1 {
			rec = records[0]
		}
		ins.Summary(files, rec)
		return nil
	}

	if useCoords {
		records = []string{"RA", "DEC"}
	}

	ins.Detail(files, extension, records, useCoords, flat)
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

func splitRecords(s string) []string {
	if s == "" {
		return nil
	}

	var records []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			records = append(records, r)
		}
	}

	return records
}

// resolve expands the given patterns, sorted for deterministic output.
// With no arguments the default patterns match FITS files in the
// current directory. A literal path that matches nothing is kept so its
// open error is reported per file.
func resolve(args []string) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"*.fits", "*.fits.gz"}
	}

	var files []string

	for _, p := range patterns {
		matches, err := filepathx.Glob(p)
		if err != nil {
			return nil, err
		}

		if len(matches) == 0 && !strings.ContainsAny(p, "*?[") {
			files = append(files, p)
			continue
		}

		files = append(files, matches...)
	}

	sort.Strings(files)
	return files, nil
}
