//go:build windows

package mmfile

import (
	"os"
)

// Map reads the whole file. A mapped view would hold the file open and block
// package managers from replacing the database, so Windows copies instead.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
