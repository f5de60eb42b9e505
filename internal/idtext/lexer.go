package idtext

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/pciids/pkg/types"
)

// DecodeInput wraps r so the scanner always sees UTF-8.
//
// The default ("" or UTF-8) passes bytes through untouched, so invalid
// sequences still reach name validation, unless the input starts with a
// byte order mark; a UTF-8 BOM is dropped and a UTF-16 BOM switches to
// UTF-16 decoding.
func DecodeInput(r io.Reader, enc string) (io.Reader, error) {
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop)), nil
	case EncodingUTF16LE:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case EncodingWindows1252:
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case EncodingLatin1:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, types.ErrUnsupportedEncoding.WithToken([]byte(enc))
	}
}
