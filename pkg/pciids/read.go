package pciids

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joshuapare/pciids/internal/mmfile"
	"github.com/joshuapare/pciids/pkg/types"
)

// DefaultPaths lists the places distributions install pci.ids, in the order
// Read tries them.
var DefaultPaths = []string{
	"/usr/share/hwdata/pci.ids",
	"/usr/share/misc/pci.ids",
	"/usr/share/pci.ids",
	"/var/lib/pciutils/pci.ids",
}

// Locate returns the first path in paths that names an existing regular
// file. A nil paths slice means DefaultPaths.
func Locate(paths []string) (string, error) {
	if paths == nil {
		paths = DefaultPaths
	}
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (searched: %s)", types.ErrFileNotFound, strings.Join(paths, ", "))
}

// Read parses the first database found in paths. A nil paths slice means
// DefaultPaths.
func Read(paths []string, opts *Options) (*Database, error) {
	opts = opts.orDefault()

	path, err := Locate(paths)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("located pci.ids", "path", path)
	return ReadFile(path, opts)
}

// ReadFile parses the database at path. The file is memory-mapped for the
// duration of the parse; the returned Database does not reference it.
func ReadFile(path string, opts *Options) (*Database, error) {
	opts = opts.orDefault()

	data, release, err := mmfile.Map(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, types.ErrIO.Wrap(err))
	}
	defer func() {
		if err := release(); err != nil {
			opts.logger().Warn("failed to unmap pci.ids", "path", path, "error", err)
		}
	}()

	opts.logger().Debug("mapped pci.ids", "path", path, "bytes", len(data))
	db, err := ParseBytes(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// fileExists checks if a regular file exists at path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
