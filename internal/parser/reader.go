package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/indaco/tosemver/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// Reader extracts version strings from files.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read reads the version described by src.
func (r *Reader) Read(ctx context.Context, src Source) (*Result, error) {
	if src.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if !src.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", src.Format)
	}

	data, err := r.fs.ReadFile(ctx, src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", src.Path, err)
	}

	var version string
	switch src.Format {
	case FormatJSON:
		version, err = readJSON(data, src.Path, src.Field)
	case FormatYAML:
		version, err = readYAML(data, src.Path, src.Field)
	case FormatTOML:
		version, err = readTOML(data, src.Path, src.Field)
	case FormatRaw:
		version = strings.TrimSpace(string(data))
	case FormatRegex:
		version, err = readRegex(data, src.Path, src.Pattern)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Version: version, Source: src}, nil
}

// readJSON decodes numbers as json.Number so `"version": 1.10` keeps its
// literal text instead of becoming 1.1.
func readJSON(data []byte, path, field string) (string, error) {
	if field == "" {
		return "", fmt.Errorf("field is required for JSON format")
	}

	var obj map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return "", fmt.Errorf("failed to parse JSON in %q: %w", path, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("field %q in %q is not a scalar version", field, path)
	}
}

// readYAML walks the AST so unquoted numeric scalars keep their literal text.
func readYAML(data []byte, path, field string) (string, error) {
	if field == "" {
		return "", fmt.Errorf("field is required for YAML format")
	}

	node, err := yamlPath(field).ReadNode(bytes.NewReader(data))
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return "", fmt.Errorf("in file %q: field %q not found", path, field)
		}
		return "", fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value, nil
	case *ast.IntegerNode:
		return n.GetToken().Value, nil
	case *ast.FloatNode:
		return n.GetToken().Value, nil
	default:
		return "", fmt.Errorf("field %q in %q is not a scalar version", field, path)
	}
}

// readTOML accepts bare integers and floats as well as strings. Floats lose
// trailing zeros (1.10 reads as "1.1"); quote versions in TOML to avoid that.
func readTOML(data []byte, path, field string) (string, error) {
	if field == "" {
		return "", fmt.Errorf("field is required for TOML format")
	}

	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("field %q in %q is not a scalar version", field, path)
	}
}

func readRegex(data []byte, path, pattern string) (string, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return "", err
	}

	matches := re.FindSubmatch(data)
	if matches == nil {
		return "", fmt.Errorf("no version match found in %q for pattern %q", path, pattern)
	}

	return string(matches[1]), nil
}

// CompilePattern compiles a regex source pattern and checks it has a capture group.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return compilePattern(pattern)
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required for regex format")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("regex pattern %q must have a capturing group", pattern)
	}
	return re, nil
}

func yamlPath(field string) *yaml.Path {
	b := (&yaml.PathBuilder{}).Root()
	for part := range strings.SplitSeq(field, ".") {
		b = b.Child(part)
	}
	return b.Build()
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "tool.poetry.version" accesses obj["tool"]["poetry"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}

		current = value
	}

	return current, nil
}
