package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(fs afero.Fs, path string) (*Config, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	contents, err := afero.ReadFile(fs, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}

	out := Default()
	if err := yaml.UnmarshalStrict(contents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Initialize writes a default configuration file into the directory. It
// refuses to overwrite an existing one.
func Initialize(fs afero.Fs, path string) error {
	target := filepath.Join(path, ConfigurationName)
	if _, err := fs.Stat(target); err == nil {
		return fmt.Errorf("%s already exists", target)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, target, data, os.FileMode(0644))
}
