package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/parser"
	"github.com/indaco/tosemver/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Writer stores version strings back into files.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a new Writer with the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write replaces the version described by src with version.
// Structured formats always store the version as a string.
func (w *Writer) Write(ctx context.Context, src Source, version string) error {
	if src.Path == "" {
		return fmt.Errorf("file path is required")
	}
	if !src.Format.IsValid() {
		return fmt.Errorf("invalid format: %s", src.Format)
	}
	if src.Format == FormatRaw {
		return w.store(ctx, src.Path, []byte(version+"\n"))
	}

	data, err := w.fs.ReadFile(ctx, src.Path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", src.Path, err)
	}

	var updated []byte
	switch src.Format {
	case FormatJSON:
		updated, err = writeJSON(data, src.Path, src.Field, version)
	case FormatYAML:
		updated, err = writeYAML(data, src.Path, src.Field, version)
	case FormatTOML:
		updated, err = writeTOML(data, src.Path, src.Field, version)
	case FormatRegex:
		updated, err = writeRegex(data, src.Path, src.Pattern, version)
	}
	if err != nil {
		return err
	}

	return w.store(ctx, src.Path, updated)
}

func (w *Writer) store(ctx context.Context, path string, data []byte) error {
	if err := w.fs.WriteFile(ctx, path, data, core.PermPublicRead); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

// writeJSON uses sjson so key order and indentation survive.
func writeJSON(data []byte, path, field, version string) ([]byte, error) {
	if field == "" {
		return nil, fmt.Errorf("field is required for JSON format")
	}

	updated, err := sjson.SetBytes(data, field, version)
	if err != nil {
		return nil, fmt.Errorf("failed to set version in %q: %w", path, err)
	}

	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}

// writeYAML replaces the node in the parsed AST so comments and key order survive.
func writeYAML(data []byte, path, field, version string) ([]byte, error) {
	if field == "" {
		return nil, fmt.Errorf("field is required for YAML format")
	}

	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	p := yamlPath(field)
	if _, err := p.FilterFile(file); err != nil {
		return nil, fmt.Errorf("in file %q: field %q not found", path, field)
	}

	if err := p.ReplaceWithReader(file, strings.NewReader(strconv.Quote(version))); err != nil {
		return nil, fmt.Errorf("failed to set version in %q: %w", path, err)
	}

	return []byte(file.String()), nil
}

func writeTOML(data []byte, path, field, version string) ([]byte, error) {
	if field == "" {
		return nil, fmt.Errorf("field is required for TOML format")
	}

	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	if err := setNestedValue(obj, field, version); err != nil {
		return nil, fmt.Errorf("in file %q: %w", path, err)
	}

	updated, err := toml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML for %q: %w", path, err)
	}
	return updated, nil
}

// writeRegex replaces the first capture group of every match, leaving the
// surrounding text untouched.
func writeRegex(data []byte, path, pattern, version string) ([]byte, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	locs := re.FindAllSubmatchIndex(data, -1)
	if len(locs) == 0 {
		return nil, fmt.Errorf("pattern %q does not match contents of %q", pattern, path)
	}

	var out []byte
	last := 0
	for _, loc := range locs {
		start, end := loc[2], loc[3]
		if start < 0 {
			continue
		}
		out = append(out, data[last:start]...)
		out = append(out, version...)
		last = end
	}
	out = append(out, data[last:]...)
	return out, nil
}

// setNestedValue sets a value in a nested map using dot notation.
// The target field must already exist.
func setNestedValue(obj map[string]any, field string, value any) error {
	parts := strings.Split(field, ".")
	current := obj

	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]].(map[string]any)
		if !ok {
			return fmt.Errorf("field %q not found", strings.Join(parts[:i+1], "."))
		}
		current = next
	}

	last := parts[len(parts)-1]
	if _, ok := current[last]; !ok {
		return fmt.Errorf("field %q not found", field)
	}
	current[last] = value
	return nil
}

// ReadWriter combines Reader and Writer functionality.
type ReadWriter struct {
	*Reader
	*Writer
}

// NewReadWriter creates a new ReadWriter with the given filesystem.
func NewReadWriter(fs core.FileSystem) *ReadWriter {
	return &ReadWriter{
		Reader: NewReader(fs),
		Writer: NewWriter(fs),
	}
}
