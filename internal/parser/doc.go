// Package parser reads and writes version strings in files: JSON, YAML and
// TOML manifests addressed by a dot-notation field, plain version files, and
// arbitrary text matched by a regex capture group.
//
// Reading returns the literal text found in the file so that loosely-formed
// values such as an unquoted YAML `version: 23.01` survive until they are
// normalized.
package parser
