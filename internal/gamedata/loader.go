package gamedata

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// LoadFile reads and unmarshals a JSON file from disk. It lets operators
// replace the embedded catalog without rebuilding.
func LoadFile[T any](path string) (T, error) {
	var result T

	content, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}

	return result, nil
}

// MustLoad reads and unmarshals a JSON file, panicking on error.
// Use this for data that must be present for the simulation to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// LoadAbilityRegistryFile builds a validated registry from an abilities file on disk.
func LoadAbilityRegistryFile(path string) (*AbilityRegistry, error) {
	file, err := LoadFile[AbilitiesFile](path)
	if err != nil {
		return nil, err
	}
	if len(file.Abilities) == 0 {
		return nil, fmt.Errorf("no abilities loaded from %s", path)
	}
	registry := NewAbilityRegistry(file.Abilities)
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return registry, nil
}
