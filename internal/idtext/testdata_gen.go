package idtext

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Profile defines characteristics for generated pci.ids data.
type Profile struct {
	// Vendors is the number of vendor records
	Vendors int

	// MaxDevicesPerVendor bounds the devices under each vendor (0..n)
	MaxDevicesPerVendor int

	// MaxSubdevicesPerDevice bounds the subsystems under each device (0..n)
	MaxSubdevicesPerDevice int

	// Classes is the number of class records (at most 256)
	Classes int

	// MaxSubClassesPerClass bounds the subclasses under each class (0..n)
	MaxSubClassesPerClass int

	// MaxProgIfsPerSubClass bounds the prog-ifs under each subclass (0..n)
	MaxProgIfsPerSubClass int

	// CommentPct is how often (0.0-1.0) a comment or blank line precedes a record
	CommentPct float64

	// UpperHexPct is how often (0.0-1.0) an id is written in upper case
	UpperHexPct float64

	// LowerClassMarkerPct is how often (0.0-1.0) a class line uses "c "
	LowerClassMarkerPct float64

	// Seed for reproducibility (0 = random)
	Seed uint64
}

var nameWords = []string{
	"Ethernet", "Controller", "Radeon", "GeForce", "Bridge", "PCIe", "USB", "SATA",
	"Audio", "Wireless", "Network", "Adapter", "[AMD/ATI]", "(rev 2)", "Inc.", "GmbH",
	"Gérard", "Société", "株式会社", "Ltd", "64-bit", "x16", "NVMe", "Host",
}

// GenerateIDs creates pci.ids data with the specified profile. Ids are
// unique within their parent and emitted in ascending order, as in the
// upstream file.
func GenerateIDs(profile Profile) []byte {
	seed := profile.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var buf bytes.Buffer
	buf.WriteString("#\n#\tList of PCI ID's (generated)\n#\n\n")

	vendorID := rng.IntN(64)
	for range profile.Vendors {
		if vendorID > 0xffff {
			break
		}
		maybeComment(&buf, profile, rng)
		fmt.Fprintf(&buf, "%s  %s\n", hexID(vendorID, 4, profile, rng), randomName(rng))

		deviceID := rng.IntN(16)
		for range rng.IntN(profile.MaxDevicesPerVendor + 1) {
			if deviceID > 0xffff {
				break
			}
			maybeComment(&buf, profile, rng)
			fmt.Fprintf(&buf, "\t%s  %s\n", hexID(deviceID, 4, profile, rng), randomName(rng))

			subdevice := rng.IntN(16)
			for range rng.IntN(profile.MaxSubdevicesPerDevice + 1) {
				if subdevice > 0xffff {
					break
				}
				fmt.Fprintf(&buf, "\t\t%s %s  %s\n",
					hexID(rng.IntN(0x10000), 4, profile, rng),
					hexID(subdevice, 4, profile, rng),
					randomName(rng))
				subdevice += 1 + rng.IntN(64)
			}
			deviceID += 1 + rng.IntN(256)
		}
		vendorID += 1 + rng.IntN(32)
	}

	buf.WriteString("\n# List of known device classes, subclasses and programming interfaces\n\n")

	for classID := range min(profile.Classes, 256) {
		maybeComment(&buf, profile, rng)
		marker := "C"
		if rng.Float64() < profile.LowerClassMarkerPct {
			marker = "c"
		}
		fmt.Fprintf(&buf, "%s %s  %s\n", marker, hexID(classID, 2, profile, rng), randomName(rng))

		subclassID := 0
		for range rng.IntN(profile.MaxSubClassesPerClass + 1) {
			if subclassID > 0xff {
				break
			}
			fmt.Fprintf(&buf, "\t%s  %s\n", hexID(subclassID, 2, profile, rng), randomName(rng))

			progIf := 0
			for range rng.IntN(profile.MaxProgIfsPerSubClass + 1) {
				if progIf > 0xff {
					break
				}
				fmt.Fprintf(&buf, "\t\t%s  %s\n", hexID(progIf, 2, profile, rng), randomName(rng))
				progIf += 1 + rng.IntN(16)
			}
			subclassID += 1 + rng.IntN(8)
		}
	}

	return buf.Bytes()
}

func maybeComment(buf *bytes.Buffer, profile Profile, rng *rand.Rand) {
	if rng.Float64() >= profile.CommentPct {
		return
	}
	if rng.IntN(2) == 0 {
		buf.WriteString("\n")
		return
	}
	buf.WriteString("# " + randomName(rng) + "\n")
}

func hexID(id, width int, profile Profile, rng *rand.Rand) string {
	s := fmt.Sprintf("%0*x", width, id)
	if rng.Float64() < profile.UpperHexPct {
		s = strings.ToUpper(s)
	}
	return s
}

func randomName(rng *rand.Rand) string {
	n := 1 + rng.IntN(5)
	words := make([]string, n)
	for i := range words {
		words[i] = nameWords[rng.IntN(len(nameWords))]
	}
	return strings.Join(words, " ")
}

// ============================================================================
// Predefined Profiles
// ============================================================================

// ProfileSmall generates a few dozen vendors and a handful of classes.
func ProfileSmall() Profile {
	return Profile{
		Vendors:                50,
		MaxDevicesPerVendor:    8,
		MaxSubdevicesPerDevice: 4,
		Classes:                8,
		MaxSubClassesPerClass:  6,
		MaxProgIfsPerSubClass:  4,
		CommentPct:             0.1,
		Seed:                   1,
	}
}

// ProfileUpstreamSized approximates the size of the upstream database.
func ProfileUpstreamSized() Profile {
	return Profile{
		Vendors:                2500,
		MaxDevicesPerVendor:    16,
		MaxSubdevicesPerDevice: 6,
		Classes:                20,
		MaxSubClassesPerClass:  10,
		MaxProgIfsPerSubClass:  6,
		CommentPct:             0.02,
		Seed:                   42,
	}
}

// ProfileIrregular mixes upper-case ids, lower-case class markers and dense
// comments.
func ProfileIrregular() Profile {
	return Profile{
		Vendors:                100,
		MaxDevicesPerVendor:    6,
		MaxSubdevicesPerDevice: 3,
		Classes:                12,
		MaxSubClassesPerClass:  5,
		MaxProgIfsPerSubClass:  3,
		CommentPct:             0.4,
		UpperHexPct:            0.5,
		LowerClassMarkerPct:    0.5,
		Seed:                   7,
	}
}
