// Package project persists the CLI's machine configuration, custom
// g-code profiles, and project templates, adapted from the teacher's
// package of the same name.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/metafin/gpro/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.gpro/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gpro")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists a MachineConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.MachineConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads a MachineConfig from the given path.
// If the file does not exist, it returns DefaultMachineConfig with no error.
func LoadAppConfig(path string) (model.MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultMachineConfig(), nil
		}
		return model.MachineConfig{}, err
	}
	var config model.MachineConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.MachineConfig{}, err
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// maxRecentProjects bounds how many paths RememberProject keeps.
const maxRecentProjects = 10

// RememberProject pushes path to the front of config's recent-projects
// list, de-duplicating and trimming it to maxRecentProjects entries.
func RememberProject(config model.MachineConfig, path string) model.MachineConfig {
	recent := make([]string, 0, len(config.RecentProjects)+1)
	recent = append(recent, path)
	for _, p := range config.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	config.RecentProjects = recent
	return config
}
