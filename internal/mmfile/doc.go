// Package mmfile loads pci.ids database files, memory-mapping them where the
// platform allows.
//
// Map returns the file contents and a release function. On unix systems the
// contents are a read-only shared mapping; elsewhere the file is read into
// memory and release is a no-op.
package mmfile
