package pciids

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/pciids/internal/idtext"
	"github.com/joshuapare/pciids/pkg/types"
)

// Parse reads a complete pci.ids stream and returns the materialized
// database. Passing nil opts uses DefaultOptions.
//
// Example:
//
//	f, err := os.Open("/usr/share/hwdata/pci.ids")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	db, err := pciids.Parse(f, nil)
func Parse(r io.Reader, opts *Options) (*Database, error) {
	opts = opts.orDefault()

	db, lines, err := parse(r, opts, nil)
	if err != nil {
		return nil, err
	}

	opts.logger().Debug("parsed pci.ids",
		"lines", lines,
		"vendors", len(db.Vendors),
		"classes", len(db.Classes),
		"classifier", opts.Classifier.String())
	return db, nil
}

// ParseBytes parses pci.ids content held in memory.
func ParseBytes(data []byte, opts *Options) (*Database, error) {
	return Parse(bytes.NewReader(data), opts)
}

// ParseString parses pci.ids content from a string.
//
// Example:
//
//	db, err := pciids.ParseString("1002  Advanced Micro Devices, Inc. [AMD/ATI]\n", nil)
func ParseString(content string, opts *Options) (*Database, error) {
	return Parse(strings.NewReader(content), opts)
}

// parse folds r into a Database and reports how many lines it read. A
// non-nil report receives the non-fatal issues seen along the way.
func parse(r io.Reader, opts *Options, report *types.DiagnosticReport) (*Database, int, error) {
	sc, err := opts.newScanner(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open pci.ids stream: %w", err)
	}

	agg := newAggregator()
	for sc.Scan() {
		ev := sc.Event()
		if report != nil {
			inspect(report, agg, ev, sc)
		}
		if err := agg.apply(ev); err != nil {
			return nil, sc.Line(), fmt.Errorf("failed to parse pci.ids: %w", atLine(err, sc))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, sc.Line(), fmt.Errorf("failed to parse pci.ids: %w", err)
	}

	db, err := agg.finish()
	if err != nil {
		return nil, sc.Line(), fmt.Errorf("failed to parse pci.ids: %w", err)
	}
	return db, sc.Line(), nil
}

// atLine annotates err with the scanner's current line.
func atLine(err error, sc *idtext.Scanner) error {
	var te *types.Error
	if errors.As(err, &te) {
		return te.At(sc.Line(), sc.Raw())
	}
	return err
}
