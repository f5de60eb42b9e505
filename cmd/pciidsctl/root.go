package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/pciids/pkg/pciids"
	"github.com/joshuapare/pciids/pkg/types"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	yamlOut bool

	// Source flags
	dbFile         string
	dbURL          string
	online         bool
	stream         bool
	classifierName string
	encoding       string
	fetchTimeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "pciidsctl",
	Short: "Resolve PCI ids to vendor, device and class names",
	Long: `pciidsctl looks up PCI vendor, device, subsystem and class ids in a
pci.ids database. The database is read from the first of the usual system
locations unless --file or --online says otherwise.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOut, "yaml", false, "Output in YAML format")

	// Source flags
	rootCmd.PersistentFlags().StringVarP(&dbFile, "file", "f", os.Getenv("PCIIDS_FILE"),
		"Path to pci.ids (default: first of the system locations, or $PCIIDS_FILE)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "url", envOr("PCIIDS_URL", pciids.DefaultURL),
		"URL used with --online (or $PCIIDS_URL)")
	rootCmd.PersistentFlags().BoolVar(&online, "online", false, "Download the database instead of reading a file")
	rootCmd.PersistentFlags().BoolVar(&stream, "stream", false,
		"Answer single lookups by scanning the file instead of loading it")
	rootCmd.PersistentFlags().StringVar(&classifierName, "classifier", "scalar",
		"Line classifier: scalar or window")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", "", "Input encoding (default UTF-8)")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "HTTP timeout for --online")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printYAML outputs data as YAML
func printYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// structured reports whether a machine-readable format was requested.
func structured() bool {
	return jsonOut || yamlOut
}

// printStructured outputs v in the requested machine-readable format.
func printStructured(v interface{}) error {
	if yamlOut {
		return printYAML(v)
	}
	return printJSON(v)
}

// newLogger returns the library logger: text on stderr, debug with --verbose,
// silent otherwise.
func newLogger() *slog.Logger {
	if !verbose || quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// parseOptions builds library options from the global flags.
func parseOptions() (*pciids.Options, error) {
	kind, err := pciids.ParseClassifierKind(classifierName)
	if err != nil {
		return nil, err
	}
	opts := pciids.DefaultOptions()
	opts.Classifier = kind
	if encoding != "" {
		opts.Encoding = encoding
	}
	opts.Logger = newLogger()
	return opts, nil
}

// loadDatabase materializes the database from the selected source.
func loadDatabase(ctx context.Context) (*pciids.Database, error) {
	opts, err := parseOptions()
	if err != nil {
		return nil, err
	}

	switch {
	case online:
		printVerbose("Fetching database: %s\n", dbURL)
		client := &http.Client{Timeout: fetchTimeout}
		return pciids.Fetch(ctx, client, dbURL, opts)
	case dbFile != "":
		printVerbose("Reading database: %s\n", dbFile)
		return pciids.ReadFile(dbFile, opts)
	default:
		return pciids.Read(nil, opts)
	}
}

// openStream opens the local database for a streaming search. Streaming
// needs a file; --online always loads the whole database.
func openStream() (*os.File, error) {
	path := dbFile
	if path == "" {
		var err error
		if path, err = pciids.Locate(nil); err != nil {
			return nil, err
		}
	}
	printVerbose("Scanning database: %s\n", path)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", types.ErrFileNotFound, path)
	}
	return f, err
}

// commandContext returns cmd's context, or Background when the command runs
// outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// streaming reports whether lookups should scan instead of load.
func streaming() bool {
	if stream && online {
		printVerbose("--stream ignored with --online\n")
		return false
	}
	return stream
}
