package fleet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads group partitions from a JSON or YAML file. Partitions
// absent from the file keep their built-in defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeConfig(f, ext)
}

// DecodeConfig reads from r to decode a Config in the given format.
func DecodeConfig(r io.Reader, format string) (Config, error) {
	cfg := DefaultConfig()
	var override Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&override); err != nil {
			return Config{}, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&override); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", format)
	}
	if override.ContainerDeck != nil {
		cfg.ContainerDeck = override.ContainerDeck
	}
	if override.ContainerEngine != nil {
		cfg.ContainerEngine = override.ContainerEngine
	}
	if override.ManalagiDeck != nil {
		cfg.ManalagiDeck = override.ManalagiDeck
	}
	if override.ManalagiEngine != nil {
		cfg.ManalagiEngine = override.ManalagiEngine
	}
	return cfg, nil
}
