package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParsedVersion holds the components of a loosely-formed version token.
// Minor and Patch default to zero when absent from the input.
// Revision is nil when the input had no fourth numeric component.
type ParsedVersion struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Revision   *uint64
	PreRelease string
	Build      string
}

var (
	// versionRegex accepts one to four dot-separated numeric components,
	// an optional pre-release and optional build metadata.
	// Named groups: major, minor, patch, revision, prerelease, buildmetadata.
	versionRegex = regexp.MustCompile(
		`^(?P<major>[0-9]+)` +
			`(?:\.(?P<minor>[0-9]+))?` +
			`(?:\.(?P<patch>[0-9]+))?` +
			`(?:\.(?P<revision>[0-9]+))?` +
			`(?:-(?P<prerelease>[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?` +
			`(?:\+(?P<buildmetadata>[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`,
	)

	majorIdx      = versionRegex.SubexpIndex("major")
	minorIdx      = versionRegex.SubexpIndex("minor")
	patchIdx      = versionRegex.SubexpIndex("patch")
	revisionIdx   = versionRegex.SubexpIndex("revision")
	prereleaseIdx = versionRegex.SubexpIndex("prerelease")
	buildIdx      = versionRegex.SubexpIndex("buildmetadata")

	// ErrInvalidVersionFormat is matched by every InvalidVersionFormatError.
	ErrInvalidVersionFormat = errors.New("invalid version format")
)

// InvalidVersionFormatError reports an input that does not match the
// accepted version grammar.
type InvalidVersionFormatError struct {
	Input string
	Err   error
}

func (e *InvalidVersionFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", ErrInvalidVersionFormat, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: %q", ErrInvalidVersionFormat, e.Input)
}

// Is makes errors.Is(err, ErrInvalidVersionFormat) succeed.
func (e *InvalidVersionFormatError) Is(target error) bool {
	return target == ErrInvalidVersionFormat
}

func (e *InvalidVersionFormatError) Unwrap() error {
	return e.Err
}

// Parse decomposes a version token into its components.
//
// Supported formats:
//   - "1", "1.2", "1.2.3", "1.2.3.4" (one to four numeric components)
//   - "1-alpha.1" (pre-release after any number of components)
//   - "1.2+build.5" (build metadata after any number of components)
//   - "1.2.3.4-rc+2019" (both)
//
// The whole input must match; surrounding whitespace is rejected.
// Returns an *InvalidVersionFormatError when the input does not match or a
// numeric component does not fit in 64 bits.
func Parse(input string) (ParsedVersion, error) {
	m := versionRegex.FindStringSubmatch(input)
	if m == nil {
		return ParsedVersion{}, &InvalidVersionFormatError{Input: input}
	}

	var (
		v   ParsedVersion
		err error
	)
	if v.Major, err = parseComponent(m[majorIdx]); err != nil {
		return ParsedVersion{}, &InvalidVersionFormatError{Input: input, Err: err}
	}
	if v.Minor, err = parseComponent(m[minorIdx]); err != nil {
		return ParsedVersion{}, &InvalidVersionFormatError{Input: input, Err: err}
	}
	if v.Patch, err = parseComponent(m[patchIdx]); err != nil {
		return ParsedVersion{}, &InvalidVersionFormatError{Input: input, Err: err}
	}
	if rev := m[revisionIdx]; rev != "" {
		n, err := parseComponent(rev)
		if err != nil {
			return ParsedVersion{}, &InvalidVersionFormatError{Input: input, Err: err}
		}
		v.Revision = &n
	}
	v.PreRelease = m[prereleaseIdx]
	v.Build = m[buildIdx]

	return v, nil
}

// Normalize converts a loosely-formed version token into its canonical
// major.minor.patch[.revision][-prerelease][+buildmetadata] form.
//
//	Normalize("1")               // "1.0.0"
//	Normalize("23.01")           // "23.1.0"
//	Normalize("1.1.1.0")         // "1.1.1"
//	Normalize("1.1.0.0-RC+2019") // "1.1.0-RC+2019"
//
// A zero revision is always dropped, so "1.1.1.0" and "1.1.1" normalize to
// the same string.
func Normalize(input string) (string, error) {
	v, err := Parse(input)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// MustNormalize is like Normalize but panics on invalid input.
// Only use it with hardcoded strings.
func MustNormalize(input string) string {
	s, err := Normalize(input)
	if err != nil {
		panic(fmt.Sprintf("MustNormalize: %v", err))
	}
	return s
}

// HasRevision reports whether the canonical form carries a fourth component.
func (v ParsedVersion) HasRevision() bool {
	return v.Revision != nil && *v.Revision > 0
}

// String returns the canonical representation of the version.
func (v ParsedVersion) String() string {
	var sb strings.Builder
	sb.Grow(24)
	sb.WriteString(strconv.FormatUint(v.Major, 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(v.Minor, 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(v.Patch, 10))
	if v.HasRevision() {
		sb.WriteByte('.')
		sb.WriteString(strconv.FormatUint(*v.Revision, 10))
	}
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// parseComponent interprets a captured digit run. Empty captures are zero.
func parseComponent(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}
