package tuning

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse overlays YAML data on the defaults and validates the result
// Lists in the document replace the default lists wholesale
func Parse(data []byte) (*Tuning, error) {
	t := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// Empty document keeps defaults
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalid, err)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads a YAML tuning file; an empty path yields validated defaults
func Load(path string) (*Tuning, error) {
	if path == "" {
		t := Default()
		if err := t.Validate(); err != nil {
			return nil, err
		}
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// MustLoad is Load for startup paths where a bad table is a programmer error
func MustLoad(path string) *Tuning {
	t, err := Load(path)
	if err != nil {
		panic(err)
	}
	return t
}

// Marshal renders the table as YAML, used to dump defaults for editing
func (t *Tuning) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}
