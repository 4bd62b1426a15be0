// Package preset stores gradient states in YAML, TOML or JSON files,
// chosen from the file extension.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for unsupported file extensions.
var ErrUnknownFormat = errors.New("preset: unknown file format")

// Format is a preset file format.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatOf returns the format of path, from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Decode reads a preset in the given format. Missing fields keep their
// default value and unknown ones are ignored; the result is validated.
func Decode(data []byte, format Format) (gradstate.State, error) {
	s := gradstate.Default()
	// decoders may append to an existing slice
	s.ColorStops = nil
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &s)
	case TOML:
		err = toml.Unmarshal(data, &s)
	case JSON:
		err = json.Unmarshal(data, &s)
	default:
		return gradstate.State{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return gradstate.State{}, fmt.Errorf("preset: decoding %s: %w", format, err)
	}
	if s.ColorStops == nil {
		s.ColorStops = gradstate.DefaultColorStops()
	}
	if err = gradstate.Validate(s); err != nil {
		return gradstate.State{}, fmt.Errorf("preset: %w", err)
	}
	return s, nil
}

// Encode writes s in the given format.
func Encode(s gradstate.State, format Format) ([]byte, error) {
	switch format {
	case YAML:
		return yaml.Marshal(s)
	case TOML:
		return toml.Marshal(s)
	case JSON:
		b, err := json.MarshalIndent(s, "", "  ")
		return append(b, '\n'), err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Load reads the preset file at path.
func Load(path string) (gradstate.State, error) {
	format, err := FormatOf(path)
	if err != nil {
		return gradstate.State{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return gradstate.State{}, fmt.Errorf("preset: %w", err)
	}
	return Decode(data, format)
}

// Save writes s to path, in the format given by the extension.
func Save(path string, s gradstate.State) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(s, format)
	if err != nil {
		return fmt.Errorf("preset: encoding %s: %w", format, err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return nil
}
