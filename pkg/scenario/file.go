package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File represents the structure of a scenarios.yaml file.
type File struct {
	Modules map[string][]Preset `yaml:"modules" json:"modules"`
}

// LoadFile reads a scenario file (YAML or JSON) and returns extra presets keyed by module id.
// A missing file yields an empty map.
func LoadFile(path string) (map[string][]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]Preset{}, nil
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var f File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	out := make(map[string][]Preset, len(f.Modules))
	for module, presets := range f.Modules {
		for _, p := range presets {
			if err := validate.Struct(p); err != nil {
				return nil, fmt.Errorf("module %s: invalid preset: %w", module, err)
			}
			out[module] = append(out[module], p)
		}
	}
	return out, nil
}
