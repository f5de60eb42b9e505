package idtext

const (
	// ============================================================================
	// pci.ids Line Tokens
	// ============================================================================

	// CommentPrefix marks a comment line
	CommentPrefix = '#'

	// Tab is the indentation unit; depth is the number of leading tabs
	Tab = '\t'

	// Space separates the subvendor and subdevice ids of a subsystem line
	Space = ' '

	// FieldDelimiter separates the id field from the name
	FieldDelimiter = "  "

	// ClassMarker opens a class record ("C 02  Network controller").
	// The letter is matched case-insensitively.
	ClassMarker = "C "

	// CR is the carriage return stripped from CRLF input
	CR = '\r'

	// ============================================================================
	// Nesting
	// ============================================================================

	// MaxDepth is the deepest indentation any record uses (subsystem / prog-if)
	MaxDepth = 2

	// ============================================================================
	// Id Field Widths (hex digits)
	// ============================================================================

	// DeviceIDWidth is the width of vendor, device, subvendor and subdevice ids
	DeviceIDWidth = 4

	// ClassIDWidth is the width of class, subclass and prog-if ids
	ClassIDWidth = 2

	// ============================================================================
	// Encoding Names
	// ============================================================================

	// EncodingUTF8 is the identifier for UTF-8 encoding (the pci.ids default)
	EncodingUTF8 = "UTF-8"

	// EncodingUTF16LE is the identifier for UTF-16 little-endian encoding
	EncodingUTF16LE = "UTF-16LE"

	// EncodingWindows1252 is the identifier for Windows-1252 encoding
	EncodingWindows1252 = "WINDOWS-1252"

	// EncodingLatin1 is the identifier for ISO-8859-1 encoding
	EncodingLatin1 = "ISO-8859-1"

	// ============================================================================
	// Buffer and Parsing Sizes
	// ============================================================================

	// ScannerInitialBufferSize is the initial buffer size for the line scanner
	ScannerInitialBufferSize = 64 * 1024 // 64KB

	// ScannerMaxLineSize is the default maximum line size for the line scanner
	ScannerMaxLineSize = 1024 * 1024 // 1MB

	// WindowSize is the lookahead window compared by WindowClassifier
	WindowSize = 16
)
