// Package profile supplies the static power profile: the device tag and
// the default capacity a lamp is constructed with. The profile is read
// once at composition time; nothing re-reads it while running.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile parametrizes lamp construction.
type Profile struct {
	// Name is the device tag used in notifications.
	Name string `yaml:"name"`

	// MaxLevel is the capacity a new lamp is given.
	MaxLevel int `yaml:"max_level"`
}

// Default returns the built-in profile used when no file is supplied.
func Default() Profile {
	return Profile{
		Name:     "Lamp",
		MaxLevel: 20,
	}
}

// Load reads a profile from a YAML file. Fields missing from the file
// keep their default values.
func Load(path string) (Profile, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}

	return p, nil
}

// Validate rejects profiles a lamp cannot be built from.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if p.MaxLevel < 0 {
		return fmt.Errorf("max_level must not be negative (got %d)", p.MaxLevel)
	}
	return nil
}
