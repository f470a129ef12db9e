// Package semver normalizes loosely-formed version tokens ("1", "23.01",
// "1.1.1.0", "1-Alpha") into canonical semantic version strings of the form
// major.minor.patch[.revision][-prerelease][+buildmetadata].
//
// Missing minor and patch components default to zero. A fourth, revision
// component is kept only when it is greater than zero, so "1.1.1.0" and
// "1.1.1" share the canonical form "1.1.1". Leading zeros in numeric
// components are dropped.
//
// All functions are pure and safe for concurrent use.
package semver
