package config

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

const configHeader = `# tosemver configuration file
#
# sources lists the files whose versions "tosemver sources" normalizes.
# Each entry takes:
#   path:    file path (required)
#   format:  json, yaml, toml, raw or regex (detected from the extension)
#   field:   dot-notation path to the version in json/yaml/toml files
#   pattern: regex whose first capture group is the version (regex format)
#
# strict: true rejects versions that keep a fourth (revision) component.
# rules: list of {type, pattern, value} policies every version must satisfy,
#   e.g. "- type: major-version-max" with "value: 2".
# theme: prompt theme (tosemver, base, base16, catppuccin, charm, dracula).
# no-color: true disables styled output.

`

// commentedMarshaler renders YAML preceded by a documentation header.
type commentedMarshaler struct{}

func (commentedMarshaler) Marshal(v any) ([]byte, error) {
	return MarshalWithComments(v)
}

// MarshalWithComments marshals v to YAML with the starter header.
func MarshalWithComments(v any) ([]byte, error) {
	body, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	buf.Write(body)
	return buf.Bytes(), nil
}
