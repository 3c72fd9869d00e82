// Package pricing computes the three booking amounts from an act's listed
// rate. Pure functions only: same input, same output, no I/O.
package pricing

const (
	// DefaultNetMajorUnits is charged when a listed rate yields no usable
	// number. A malformed rate must not fail the transaction.
	DefaultNetMajorUnits = 1000

	minorUnitsPerMajor = 100

	// Platform commission, percent of the artist's net.
	feePercent = 20

	// maxRateMajorUnits bounds a parsed rate. A longer digit run is noise
	// (phone number, reference code) and must not wrap int64 into a
	// negative amount; it falls back like any other unusable rate.
	maxRateMajorUnits = 1_000_000_000_000
)

// Quote is a priced booking in the smallest currency unit.
// ClientTotal == ArtistNet + PlatformFee by construction.
type Quote struct {
	ArtistNet   int64
	PlatformFee int64
	ClientTotal int64
}

// ForRate prices a booking from a free-text listed rate.
func ForRate(listedRate string) Quote {
	major := ParseListedRate(listedRate)
	if major <= 0 {
		major = DefaultNetMajorUnits
	}
	net := major * minorUnitsPerMajor
	fee := FeeFor(net)
	return Quote{
		ArtistNet:   net,
		PlatformFee: fee,
		ClientTotal: net + fee,
	}
}

// FeeFor is the platform fee on a net amount, round-half-up.
func FeeFor(net int64) int64 {
	return (net*feePercent + 50) / 100
}

// ParseListedRate extracts the rate in currency major units from free text.
// Artists enter ranges and annotations ("1,000 - 2,000 AED", "from 500"),
// so only the FIRST numeric token counts; commas inside a token are treated
// as grouping separators. Stripping every non-digit instead would silently
// merge "1,500-3,000" into 15003000. Returns 0 when no digits are found or
// when the first token exceeds maxRateMajorUnits.
func ParseListedRate(raw string) int64 {
	var n int64
	inNumber := false
	overflow := false
	prev := rune(0)
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			inNumber = true
			if !overflow {
				n = n*10 + int64(r-'0')
				if n > maxRateMajorUnits {
					overflow = true
				}
			}
		case r == ',' && inNumber && prev >= '0' && prev <= '9':
			// grouping separator, stay inside the token
		default:
			if inNumber {
				if overflow {
					return 0
				}
				return n
			}
		}
		prev = r
	}
	if overflow {
		return 0
	}
	return n
}
