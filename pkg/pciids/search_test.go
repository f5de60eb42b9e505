package pciids_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pciids/pkg/pciids"
	"github.com/joshuapare/pciids/pkg/types"
)

func TestFindVendorName(t *testing.T) {
	data := loadFixture(t)

	tests := []struct {
		name      string
		vendor    uint16
		wantName  string
		wantFound bool
	}{
		{"first vendor", 0x0001, "SafeNet (wrong ID)", true},
		{"second vendor", 0x0010, "Allied Telesis, Inc (Wrong ID)", true},
		{"last vendor", 0xffff, "Illegal Vendor ID", true},
		{"absent", 0x1234, "", false},
		{"id only used as subvendor", 0x0b37, "", false},
	}

	for _, tt := range tests {
		for _, cls := range allClassifiers {
			t.Run(tt.name+"/"+cls.String(), func(t *testing.T) {
				name, found, err := pciids.FindVendorName(bytes.NewReader(data), tt.vendor, &pciids.Options{Classifier: cls})
				require.NoError(t, err)
				require.Equal(t, tt.wantFound, found)
				require.Equal(t, tt.wantName, name)
			})
		}
	}
}

func TestFindDeviceName(t *testing.T) {
	data := loadFixture(t)

	tests := []struct {
		name           string
		vendor, device uint16
		wantName       string
		wantFound      bool
	}{
		{"first device", 0x0010, 0x8139, "AT-2500TX V3 Ethernet", true},
		{"kaveri", 0x1002, 0x1306, "Kaveri", true},
		{"device of the next vendor", 0x1001, 0x1306, "", false},
		{"device of an earlier vendor", 0x1002, 0x0010, "", false},
		{"vendor absent", 0x1234, 0x0001, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, found, err := pciids.FindDeviceName(bytes.NewReader(data), tt.vendor, tt.device, nil)
			require.NoError(t, err)
			require.Equal(t, tt.wantFound, found)
			require.Equal(t, tt.wantName, name)
		})
	}
}

func TestFindSubdeviceName(t *testing.T) {
	data := loadFixture(t)

	tests := []struct {
		name                                 string
		vendor, device, subvendor, subdevice uint16
		wantName                             string
		wantFound                            bool
	}{
		{"polaris", 0x1002, 0x67df, 0x1da2, 0xe387, "Radeon RX 580 Pulse 4GB", true},
		{"vega without subsystem", 0x1002, 0x687f, 0x1043, 0x0555, "", false},
		{"subsystem of the next device", 0x1002, 0x67df, 0x1da2, 0xe376, "", false},
		{"subsystem under another vendor", 0x10ec, 0x8168, 0x1458, 0x3702, "", false},
		{"device absent", 0x1002, 0x0000, 0x1da2, 0xe387, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, found, err := pciids.FindSubdeviceName(bytes.NewReader(data),
				tt.vendor, tt.device, tt.subvendor, tt.subdevice, nil)
			require.NoError(t, err)
			require.Equal(t, tt.wantFound, found)
			require.Equal(t, tt.wantName, name)
		})
	}
}

// TestStreamingAgreesWithMaterialized compares both query paths for every
// vendor, device and subsystem in the fixture.
func TestStreamingAgreesWithMaterialized(t *testing.T) {
	data := loadFixture(t)
	db := parseFixture(t)

	for vid, v := range db.Vendors {
		name, found, err := pciids.FindVendorName(bytes.NewReader(data), vid, nil)
		require.NoError(t, err)
		require.True(t, found, "vendor %04x", vid)
		require.Equal(t, v.Name, name)

		for did, d := range v.Devices {
			name, found, err := pciids.FindDeviceName(bytes.NewReader(data), vid, did, nil)
			require.NoError(t, err)
			require.True(t, found, "device %04x:%04x", vid, did)
			require.Equal(t, d.Name, name)

			for sid, sname := range d.Subdevices {
				name, found, err := pciids.FindSubdeviceName(bytes.NewReader(data),
					vid, did, sid.Subvendor, sid.Subdevice, nil)
				require.NoError(t, err)
				require.True(t, found, "subsystem %04x:%04x %s", vid, did, sid)
				require.Equal(t, sname, name)
			}
		}
	}
}

// countingReader records how many bytes were consumed.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestFindStopsEarly(t *testing.T) {
	// Pad past the scanner's first buffer fill so an early stop is visible.
	var b strings.Builder
	b.WriteString("0001  SafeNet (wrong ID)\n\t0001  First\n0002  Next\n")
	for b.Len() < 1<<20 {
		b.WriteString("ffff  Filler vendor\n")
	}
	b.WriteString("\t\tnot a valid line\n")

	cr := &countingReader{r: strings.NewReader(b.String())}
	name, found, err := pciids.FindDeviceName(cr, 0x0001, 0x0001, nil)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "First", name)
	require.Less(t, cr.n, b.Len())

	// The miss is decided at the next vendor, before the malformed tail.
	_, found, err = pciids.FindDeviceName(strings.NewReader(b.String()), 0x0001, 0x9999, nil)
	require.NoError(t, err)
	require.False(t, found)
}

func TestFindStopsAtClassSection(t *testing.T) {
	input := "1002  AMD\nC 03  Display controller\n\t00  VGA compatible controller\n\t\tzz  broken\n"
	_, found, err := pciids.FindVendorName(strings.NewReader(input), 0x0003, nil)
	require.NoError(t, err)
	require.False(t, found)
}

func TestFindErrors(t *testing.T) {
	t.Run("malformed line before match", func(t *testing.T) {
		_, _, err := pciids.FindVendorName(strings.NewReader("0001 SafeNet\n"), 0x0001, nil)
		require.ErrorIs(t, err, types.ErrMissingDelimiter)
		var te *types.Error
		require.ErrorAs(t, err, &te)
		require.Equal(t, 1, te.Line)
	})

	t.Run("reader failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, _, err := pciids.FindVendorName(iotest.ErrReader(boom), 0x0001, nil)
		require.ErrorIs(t, err, boom)
		kind, ok := types.KindOf(err)
		require.True(t, ok)
		require.Equal(t, types.ErrKindIO, kind)
	})

	t.Run("unsupported encoding", func(t *testing.T) {
		_, _, err := pciids.FindSubdeviceName(strings.NewReader(""), 1, 2, 3, 4, &pciids.Options{Encoding: "EBCDIC"})
		require.ErrorIs(t, err, types.ErrUnsupportedEncoding)
	})
}
