package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given.
const defaultConfigFile = "calltape.yaml"

// Config holds project-level defaults for the CLI. Flags always override.
type Config struct {
	// RecordingsDir is the recordings directory.
	RecordingsDir string `yaml:"recordings_dir,omitempty"`
	// IndexPath is the SQLite catalog location.
	IndexPath string `yaml:"index_path,omitempty"`
	// Module is the import path of the module under test.
	Module string `yaml:"module,omitempty"`
	// ModuleRoot is the filesystem directory Module maps to.
	ModuleRoot string `yaml:"module_root,omitempty"`
}

// LoadConfig reads a YAML config file.
//
// With an empty path, calltape.yaml is tried and a missing file is not an
// error. An explicitly given path must exist.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
