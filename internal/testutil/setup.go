package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// Fixture is the checked-in pci.ids excerpt, relative to the repository root.
const Fixture = "testdata/pci.ids"

// FixturePath resolves Fixture from the working directory of the calling test.
// Calls t.Skip if the fixture is not found.
func FixturePath(t testing.TB) string {
	t.Helper()
	return resolveTestPath(t, Fixture)
}

// LoadFixture returns the contents of the fixture.
func LoadFixture(t testing.TB) []byte {
	t.Helper()
	data, err := os.ReadFile(FixturePath(t))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	return data
}

// CopyFixture copies the fixture into a temporary directory under tempName
// and returns the new path. Tests that mutate or remove the file use this.
//
// Example:
//
//	path := testutil.CopyFixture(t, "pci.ids")
//	db, err := pciids.ReadFile(path, nil)
func CopyFixture(t testing.TB, tempName string) string {
	t.Helper()
	dst := filepath.Join(t.TempDir(), tempName)
	copyFile(t, FixturePath(t), dst)
	return dst
}

// resolveTestPath attempts to find a repository file by trying multiple path resolutions.
// This handles the fact that tests may be run from different working directories.
func resolveTestPath(t testing.TB, relativePath string) string {
	t.Helper()

	candidates := []string{
		relativePath,                  // Direct path (from repo root)
		"../" + relativePath,          // From a top-level package
		"../../" + relativePath,       // From package two levels deep (e.g., pkg/pciids/)
		"../../../" + relativePath,    // From package three levels deep
		"../../../../" + relativePath, // From package four levels deep
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	t.Skipf("Fixture not found at any candidate path starting from: %s", relativePath)
	return "" // unreachable
}

// copyFile copies src to dst.
// Calls t.Fatal if the copy fails.
func copyFile(t testing.TB, src, dst string) {
	t.Helper()

	srcFile, err := os.Open(src)
	if err != nil {
		t.Skipf("Fixture not found: %v", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		t.Fatalf("Failed to create temp fixture: %v", err)
	}
	defer dstFile.Close()

	if _, copyErr := io.Copy(dstFile, srcFile); copyErr != nil {
		t.Fatalf("Failed to copy fixture: %v", copyErr)
	}
}
