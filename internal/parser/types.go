package parser

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Format represents the supported version source formats.
type Format string

const (
	// FormatJSON is for JSON manifests (package.json, composer.json).
	FormatJSON Format = "json"

	// FormatYAML is for YAML manifests (Chart.yaml, pubspec.yaml).
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML manifests (Cargo.toml, pyproject.toml).
	FormatTOML Format = "toml"

	// FormatRaw is for plain files whose whole content is the version.
	FormatRaw Format = "raw"

	// FormatRegex is for files where the version is the first capture group of a pattern.
	FormatRegex Format = "regex"
)

func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// Structured reports whether the format addresses the version by field path.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// ParseFormat lower-cases and trims s. Unknown names are returned as is;
// check the result with IsValid.
func ParseFormat(s string) Format {
	return Format(strings.ToLower(strings.TrimSpace(s)))
}

// Source describes where a version lives inside a file.
type Source struct {
	// Path is the file path (absolute or relative).
	Path string `yaml:"path"`

	// Format specifies how the file is read.
	Format Format `yaml:"format,omitempty"`

	// Field is the dot-notation path to the version for structured formats,
	// e.g. "version" or "tool.poetry.version".
	Field string `yaml:"field,omitempty"`

	// Pattern is the regex used by FormatRegex. Its first capture group is the version.
	Pattern string `yaml:"pattern,omitempty"`
}

// Result is a version read from a source. Version holds the literal text
// found in the file, before any normalization.
type Result struct {
	Version string
	Source  Source
}

var knownFields = map[string]string{
	"package.json":   "version",
	"composer.json":  "version",
	"manifest.json":  "version",
	"Cargo.toml":     "package.version",
	"pyproject.toml": "project.version",
	"Chart.yaml":     "version",
	"pubspec.yaml":   "version",
}

// KnownFiles returns the manifest names with a known version field, sorted.
func KnownFiles() []string {
	return slices.Sorted(maps.Keys(knownFields))
}

// DetectSource fills in Format and Field for well-known file names when they
// are not set. Unknown names fall back to raw.
func DetectSource(src Source) Source {
	if src.Format == "" {
		src.Format = FormatForFile(src.Path)
	}
	if src.Field == "" && src.Format.Structured() {
		src.Field = FieldForFile(src.Path)
	}
	return src
}

// FieldForFile returns the usual version field for a manifest file name.
func FieldForFile(path string) string {
	if field, ok := knownFields[filepath.Base(path)]; ok {
		return field
	}
	return "version"
}

// FormatForFile detects the format from the file extension.
func FormatForFile(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatRaw
	}
}
