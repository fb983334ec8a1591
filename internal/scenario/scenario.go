// Package scenario describes registrations and emissions in a file and runs
// them against an evreg registry.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a scenario file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Scenario is a script of callbacks, registrations and emissions.
type Scenario struct {
	Callbacks     []CallbackSpec `toml:"callbacks" yaml:"callbacks"`
	Registrations []Registration `toml:"register" yaml:"register"`
	Emit          []string       `toml:"emit" yaml:"emit"`
}

// CallbackSpec declares a named callback. Fail and Panic make it misbehave,
// which is how scenarios exercise the failure policy.
type CallbackSpec struct {
	Name  string `toml:"name" yaml:"name"`
	Fail  string `toml:"fail" yaml:"fail"`
	Panic bool   `toml:"panic" yaml:"panic"`
}

// Registration registers callbacks, in order, under one event.
type Registration struct {
	Event     string   `toml:"event" yaml:"event"`
	Callbacks []string `toml:"callbacks" yaml:"callbacks"`
}

var ErrInvalid = errors.New("invalid scenario")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported scenario file extension %q", filepath.Ext(path))
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte, format Format) (*Scenario, error) {
	var sc Scenario
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&sc)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that callback names are unique and that every registration
// refers to a declared callback.
func (s *Scenario) Validate() error {
	var errs []error
	declared := make(map[string]bool, len(s.Callbacks))
	for i, cb := range s.Callbacks {
		switch {
		case cb.Name == "":
			errs = append(errs, fmt.Errorf("%w: callback #%d has no name", ErrInvalid, i))
		case declared[cb.Name]:
			errs = append(errs, fmt.Errorf("%w: callback %q declared twice", ErrInvalid, cb.Name))
		}
		declared[cb.Name] = true
	}
	for i, reg := range s.Registrations {
		if reg.Event == "" {
			errs = append(errs, fmt.Errorf("%w: registration #%d has no event", ErrInvalid, i))
		}
		for _, name := range reg.Callbacks {
			if !declared[name] {
				errs = append(errs, fmt.Errorf("%w: event %q registers undeclared callback %q", ErrInvalid, reg.Event, name))
			}
		}
	}
	for i, ev := range s.Emit {
		if ev == "" {
			errs = append(errs, fmt.Errorf("%w: emit #%d is empty", ErrInvalid, i))
		}
	}
	return errors.Join(errs...)
}
