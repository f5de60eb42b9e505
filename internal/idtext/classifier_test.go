package idtext

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pciids/pkg/types"
)

var classifiers = []struct {
	name string
	cls  Classifier
}{
	{"scalar", ScalarClassifier{}},
	{"window", WindowClassifier{}},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Line
		wantErr error
	}{
		{
			name: "vendor",
			line: "0001  SafeNet (wrong ID)",
			want: Line{Shape: ShapeTop, ID: Span{0, 4}, Name: Span{6, 24}},
		},
		{
			name: "device",
			line: "\t8139  AT-2500TX V3 Ethernet",
			want: Line{Shape: ShapeNested, ID: Span{1, 5}, Name: Span{7, 28}},
		},
		{
			name: "subsystem",
			line: "\t\t1da2 e387  Radeon RX 580 Pulse 4GB",
			want: Line{Shape: ShapeSubsystem, ID: Span{2, 6}, SubID: Span{7, 11}, Name: Span{13, 36}},
		},
		{
			name: "class",
			line: "C 00  Unclassified device",
			want: Line{Shape: ShapeClass, ID: Span{2, 4}, Name: Span{6, 25}},
		},
		{
			name: "lower case class marker",
			line: "c 02  Network controller",
			want: Line{Shape: ShapeClass, ID: Span{2, 4}, Name: Span{6, 24}},
		},
		{
			name: "subclass",
			line: "\t01  IDE interface",
			want: Line{Shape: ShapeNested, ID: Span{1, 3}, Name: Span{5, 18}},
		},
		{
			name: "prog-if",
			line: "\t\t00  VGA controller",
			want: Line{Shape: ShapeLeaf, ID: Span{2, 4}, Name: Span{6, 20}},
		},
		{
			name: "empty name",
			line: "abcd  ",
			want: Line{Shape: ShapeTop, ID: Span{0, 4}, Name: Span{6, 6}},
		},
		{
			name: "name keeps extra spaces",
			line: "abcd   spaced  out",
			want: Line{Shape: ShapeTop, ID: Span{0, 4}, Name: Span{6, 18}},
		},
		{
			name: "short id keeps its boundaries",
			line: "12  short",
			want: Line{Shape: ShapeTop, ID: Span{0, 2}, Name: Span{4, 9}},
		},
		{
			name: "upper case hex",
			line: "\tABCD  Upper",
			want: Line{Shape: ShapeNested, ID: Span{1, 5}, Name: Span{7, 12}},
		},
		{
			name:    "missing delimiter",
			line:    "0001 SafeNet",
			wantErr: types.ErrMissingDelimiter,
		},
		{
			name:    "missing delimiter in class",
			line:    "C 00 Unclassified",
			wantErr: types.ErrMissingDelimiter,
		},
		{
			name:    "too deep",
			line:    "\t\t\t00  Deep",
			wantErr: types.ErrIndentation,
		},
		{
			name:    "single character",
			line:    "C",
			wantErr: types.ErrMissingDelimiter,
		},
	}

	for _, c := range classifiers {
		for _, tt := range tests {
			t.Run(c.name+"/"+tt.name, func(t *testing.T) {
				got, err := c.cls.Classify([]byte(tt.line))
				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr)
					return
				}
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			})
		}
	}
}

// TestClassifiersAgreeOnGeneratedFiles checks the window classifier against
// the scalar one for every record line of generated databases.
func TestClassifiersAgreeOnGeneratedFiles(t *testing.T) {
	profiles := map[string]Profile{
		"small":     ProfileSmall(),
		"irregular": ProfileIrregular(),
		"upstream":  ProfileUpstreamSized(),
	}

	for name, profile := range profiles {
		t.Run(name, func(t *testing.T) {
			data := GenerateIDs(profile)
			checked := 0
			for _, line := range bytes.Split(data, []byte("\n")) {
				if len(line) == 0 || line[0] == CommentPrefix {
					continue
				}
				want, wantErr := ScalarClassifier{}.Classify(line)
				got, gotErr := WindowClassifier{}.Classify(line)
				require.NoError(t, wantErr, "line %q", line)
				require.NoError(t, gotErr, "line %q", line)
				require.Equal(t, want, got, "line %q", line)
				checked++
			}
			require.Positive(t, checked)
		})
	}
}

// TestClassifiersAgreeOnMutatedLines feeds both classifiers damaged lines and
// requires identical results, including errors.
func TestClassifiersAgreeOnMutatedLines(t *testing.T) {
	seeds := []string{
		"0001  SafeNet (wrong ID)",
		"\t8139  AT-2500TX V3 Ethernet",
		"\t\t1da2 e387  Radeon RX 580 Pulse 4GB",
		"C 03  Display controller",
		"\t00  VGA compatible controller",
		"\t\t01  8514 controller",
	}
	alphabet := []byte{' ', '\t', 'C', 'c', 'g', '0', 'f', 'F', 0x00, 0xff}
	rng := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 20000; i++ {
		line := []byte(seeds[rng.IntN(len(seeds))])
		for range 1 + rng.IntN(3) {
			switch rng.IntN(3) {
			case 0:
				line[rng.IntN(len(line))] = alphabet[rng.IntN(len(alphabet))]
			case 1:
				line = line[:rng.IntN(len(line))+1]
			case 2:
				pos := rng.IntN(len(line) + 1)
				line = append(line[:pos], append([]byte{alphabet[rng.IntN(len(alphabet))]}, line[pos:]...)...)
			}
		}

		want, wantErr := ScalarClassifier{}.Classify(line)
		got, gotErr := WindowClassifier{}.Classify(line)
		if wantErr != nil {
			require.Error(t, gotErr, "line %q", line)
			require.Equal(t, wantErr.Error(), gotErr.Error(), "line %q", line)
			continue
		}
		require.NoError(t, gotErr, "line %q", line)
		require.Equal(t, want, got, "line %q", line)
	}
}

func TestWindowClassifierShortLines(t *testing.T) {
	// Lines shorter than the window must classify without reading past the
	// slice; cap == len makes any overrun panic.
	for _, s := range []string{"", "C", "C ", "\t", "\t\t", "ab", "abcd ", "abcd  "} {
		line := make([]byte, len(s))
		copy(line, s)
		line = line[:len(s):len(s)]

		want, wantErr := ScalarClassifier{}.Classify(line)
		got, gotErr := WindowClassifier{}.Classify(line)
		require.Equal(t, want, got, "line %q", s)
		if wantErr != nil {
			require.EqualError(t, gotErr, wantErr.Error(), "line %q", s)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		section Section
		want    Event
		wantErr error
	}{
		{
			name:    "vendor",
			line:    "1002  Advanced Micro Devices, Inc. [AMD/ATI]",
			section: SectionDevices,
			want:    Event{Kind: EventVendor, ID: 0x1002, Name: "Advanced Micro Devices, Inc. [AMD/ATI]"},
		},
		{
			name:    "device",
			line:    "\t67DF  Ellesmere",
			section: SectionDevices,
			want:    Event{Kind: EventDevice, ID: 0x67df, Name: "Ellesmere"},
		},
		{
			name:    "subdevice",
			line:    "\t\t1da2 e387  Radeon RX 580 Pulse 4GB",
			section: SectionDevices,
			want:    Event{Kind: EventSubdevice, ID: 0x1da2, SubID: 0xe387, Name: "Radeon RX 580 Pulse 4GB"},
		},
		{
			name:    "class",
			line:    "C 02  Network controller",
			section: SectionClasses,
			want:    Event{Kind: EventClass, ID: 0x02, Name: "Network controller"},
		},
		{
			name:    "subclass",
			line:    "\t07  Infiniband controller",
			section: SectionClasses,
			want:    Event{Kind: EventSubClass, ID: 0x07, Name: "Infiniband controller"},
		},
		{
			name:    "prog-if",
			line:    "\t\t00  VGA controller",
			section: SectionClasses,
			want:    Event{Kind: EventProgIf, ID: 0x00, Name: "VGA controller"},
		},
		{
			name:    "utf-8 name",
			line:    "1234  Société Générale",
			section: SectionDevices,
			want:    Event{Kind: EventVendor, ID: 0x1234, Name: "Société Générale"},
		},
		{
			name:    "vendor id too short",
			line:    "12  Short",
			section: SectionDevices,
			wantErr: types.ErrInvalidID,
		},
		{
			name:    "vendor id not hex",
			line:    "12g4  Bad",
			section: SectionDevices,
			wantErr: types.ErrInvalidID,
		},
		{
			name:    "subclass id too wide",
			line:    "\t0700  Wide",
			section: SectionClasses,
			wantErr: types.ErrInvalidID,
		},
		{
			name:    "subdevice id not hex",
			line:    "\t\t1da2 zz87  Bad",
			section: SectionDevices,
			wantErr: types.ErrInvalidID,
		},
		{
			name:    "vendor inside class section",
			line:    "1002  Late vendor",
			section: SectionClasses,
			wantErr: types.ErrUnexpectedRecord,
		},
		{
			name:    "subsystem inside class section",
			line:    "\t\t1da2 e387  Late subsystem",
			section: SectionClasses,
			wantErr: types.ErrUnexpectedRecord,
		},
		{
			name:    "leaf inside device section",
			line:    "\t\te387  Missing subvendor",
			section: SectionDevices,
			wantErr: types.ErrUnexpectedRecord,
		},
		{
			name:    "invalid utf-8",
			line:    "1234  Bad \xff\xfe name",
			section: SectionDevices,
			wantErr: types.ErrInvalidUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := []byte(tt.line)
			l, err := ScalarClassifier{}.Classify(line)
			require.NoError(t, err)

			got, err := Decode(l, line, tt.section)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeNamesOffendingToken(t *testing.T) {
	line := []byte("\t\t1da2 e38g  Bad")
	l, err := ScalarClassifier{}.Classify(line)
	require.NoError(t, err)

	_, err = Decode(l, line, SectionDevices)
	var te *types.Error
	require.ErrorAs(t, err, &te)
	require.Equal(t, types.ErrKindParse, te.Kind)
	require.Equal(t, "e38g", te.Token)
}
