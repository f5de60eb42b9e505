package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pciids/pkg/pciids"
	"github.com/joshuapare/pciids/pkg/types"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report duplicate ids and other issues in the database",
	Long: `Parses the database and reports issues a normal load resolves silently:
  - records that replace an earlier record with the same id
  - records with an empty name
  - the first malformed line, if the file cannot be parsed`,
	Example: `  # Check the system database
  pciidsctl check

  # Check a local copy and emit JSON
  pciidsctl check --file ./pci.ids --format json

  # One line per issue, for grep
  pciidsctl check --format compact`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "text",
		"Output format: text, json, compact")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions()
	if err != nil {
		return err
	}

	src, name, err := openCheckSource(cmd)
	if err != nil {
		return err
	}
	defer src.Close()

	report, parseErr := pciids.Diagnose(src, opts)
	report.Source = name

	if jsonOut {
		checkFormat = "json"
	}
	switch checkFormat {
	case "json":
		out, err := report.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, out)
	case "compact":
		fmt.Fprint(os.Stdout, report.FormatTextCompact())
	case "text":
		fmt.Fprint(os.Stdout, report.FormatText())
	default:
		return fmt.Errorf("unknown format %q", checkFormat)
	}

	if parseErr != nil {
		return parseErr
	}
	return nil
}

// openCheckSource opens the selected database as a stream.
func openCheckSource(cmd *cobra.Command) (io.ReadCloser, string, error) {
	if !online {
		f, err := openStream()
		if err != nil {
			return nil, "", err
		}
		return f, f.Name(), nil
	}

	req, err := http.NewRequestWithContext(commandContext(cmd), http.MethodGet, dbURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := (&http.Client{Timeout: fetchTimeout}).Do(req)
	if err != nil {
		return nil, "", types.ErrIO.Wrap(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, "", types.ErrIO.Wrap(errors.New("GET " + dbURL + ": " + resp.Status))
	}
	return resp.Body, dbURL, nil
}
