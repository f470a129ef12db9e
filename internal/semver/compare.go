package semver

import (
	"strings"

	modsemver "golang.org/x/mod/semver"
)

// Compare compares two parsed versions.
// It returns -1 if v < other, 0 if v == other, and +1 if v > other.
// A missing revision counts as zero. Pre-release versions have lower
// precedence than the associated normal version (e.g., 1.0.0-alpha < 1.0.0).
// Build metadata is ignored for comparison purposes.
func (v ParsedVersion) Compare(other ParsedVersion) int {
	if c := compareUint(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareUint(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareUint(v.Patch, other.Patch); c != 0 {
		return c
	}
	if c := compareUint(v.revision(), other.revision()); c != 0 {
		return c
	}

	switch {
	case v.PreRelease == "" && other.PreRelease == "":
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	default:
		return comparePreRelease(v.PreRelease, other.PreRelease)
	}
}

// IsStrict reports whether the canonical form of v is a valid
// SemVer 2.0.0 string (three components, no leading zeros in numeric
// pre-release identifiers).
func (v ParsedVersion) IsStrict() bool {
	return IsStrict(v.String())
}

// IsStrict reports whether s is a valid SemVer 2.0.0 string.
// An optional "v" prefix is accepted.
func IsStrict(s string) bool {
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	// x/mod/semver accepts "v1" and "v1.2" shorthands; SemVer 2.0.0 does not.
	core, _, _ := strings.Cut(strings.TrimPrefix(s, "v"), "-")
	core, _, _ = strings.Cut(core, "+")
	if strings.Count(core, ".") != 2 {
		return false
	}
	return modsemver.IsValid(s)
}

func (v ParsedVersion) revision() uint64 {
	if v.Revision == nil {
		return 0
	}
	return *v.Revision
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePreRelease(a, b string) int {
	aIDs := strings.Split(a, ".")
	bIDs := strings.Split(b, ".")

	n := min(len(aIDs), len(bIDs))
	for i := range n {
		if c := compareIdentifier(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}

	// If equal so far, shorter list has lower precedence.
	switch {
	case len(aIDs) < len(bIDs):
		return -1
	case len(aIDs) > len(bIDs):
		return 1
	default:
		return 0
	}
}

func compareIdentifier(a, b string) int {
	aNum, aIsNum := parseNumericIdentifier(a)
	bNum, bIsNum := parseNumericIdentifier(b)

	switch {
	case aIsNum && bIsNum:
		return compareUint(aNum, bNum)
	case aIsNum && !bIsNum:
		return -1 // numeric < non-numeric
	case !aIsNum && bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Numeric identifiers: only digits, no leading zeros unless exactly "0".
func parseNumericIdentifier(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := parseComponent(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
