package profile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a profile from a YAML file. Unknown keys are rejected so that a
// misspelled attribute is not silently treated as missing.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return p, nil
}

// Parse decodes a profile document. An empty document yields an empty profile.
func Parse(data []byte) (*Profile, error) {
	p := &Profile{}
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, err
	}

	return p, nil
}
