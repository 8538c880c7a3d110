package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a scene file. The format is chosen by extension: .yaml, .yml
// or .json. The loaded scene is validated and a zero recursion limit is
// replaced by DefaultRecursionLimit.
func Load(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to read scene file: %w", err)
	}

	var s Scene
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Scene{}, fmt.Errorf("failed to parse YAML scene: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return Scene{}, fmt.Errorf("failed to parse JSON scene: %w", err)
		}
	default:
		return Scene{}, fmt.Errorf("unsupported scene format: %s", ext)
	}

	if s.RecursionLimit == 0 {
		s.RecursionLimit = DefaultRecursionLimit
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Save writes s as YAML.
func Save(path string, s Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
