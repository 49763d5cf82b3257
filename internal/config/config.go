// Package config holds the emulator's persisted window/run preferences,
// loaded from and saved to a JSON file the way the teacher's ui.Config
// does.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config carries window and trace preferences across runs.
type Config struct {
	Title string `json:"title"`
	Scale int    `json:"scale"`
	Trace bool   `json:"trace"`
}

// Defaults fills unset fields with the teacher's chosen defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "dmgcore"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
}

// Load reads a JSON config from path, applying defaults on top of any
// fields the file leaves zero. A missing file yields pure defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.Defaults()
			return c, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.Defaults()
	return c, nil
}

// Save writes c to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
