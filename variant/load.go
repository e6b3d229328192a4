package variant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a descriptor file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// File is the top-level shape of a descriptor file:
//
//	families:
//	  - name: greet
//	    params: [name]
//	    flags: [formal]
//	    template: "{% if formal %}Good day, ${name}.{% else %}Hi ${name}!{% end %}"
type File struct {
	Families []Descriptor `json:"families" yaml:"families" toml:"families" jsonschema:"description=Operation families to generate"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// Decode parses descriptor file contents. Unknown keys are rejected so
// typos in flag or template keys do not silently drop configuration.
func Decode(data []byte, format Format) ([]Descriptor, error) {
	var f File

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml: unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q", format)
	}

	return f.Families, nil
}

// LoadFile reads the descriptors in a YAML, TOML or JSON file.
func LoadFile(path string) ([]Descriptor, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported descriptor file extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor file: %w", err)
	}
	ds, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// DescriptorFiles lists the descriptor files directly inside dir, sorted.
func DescriptorFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read descriptor dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(e.Name()); ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir reads every descriptor file directly inside dir, in name order.
func LoadDir(dir string) ([]Descriptor, error) {
	paths, err := DescriptorFiles(dir)
	if err != nil {
		return nil, err
	}

	var all []Descriptor
	for _, p := range paths {
		ds, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, ds...)
	}
	return all, nil
}

// GenerateFiles loads descriptor files and generates each family in r.
// It stops at the first error; families generated before it stay
// registered.
func (r *Registry) GenerateFiles(paths ...string) ([]*Set, error) {
	var sets []*Set
	for _, p := range paths {
		ds, err := LoadFile(p)
		if err != nil {
			return sets, err
		}
		for _, d := range ds {
			set, err := r.Generate(d)
			if err != nil {
				return sets, fmt.Errorf("%s: %w", p, err)
			}
			sets = append(sets, set)
		}
	}
	return sets, nil
}
