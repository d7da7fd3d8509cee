package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lucrnz/durseq/internal/durations"
)

// ErrScheduleNotFound is returned by Schedule for an unknown name.
var ErrScheduleNotFound = errors.New("schedule not found")

// Config is the on-disk configuration file.
type Config struct {
	Log       Log                        `yaml:"log"`
	Schedules map[string]*durations.List `yaml:"schedules"`
}

// Log configures the CLI logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	for name, schedule := range cfg.Schedules {
		if schedule == nil {
			return nil, fmt.Errorf("schedule %q: %w", name, durations.ErrNilInput)
		}
	}
	return &cfg, nil
}

// Schedule returns the named schedule.
func (c *Config) Schedule(name string) (durations.List, error) {
	if c != nil {
		if s, ok := c.Schedules[name]; ok && s != nil {
			return *s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrScheduleNotFound, name)
}

// ScheduleNames returns the configured schedule names in sorted order.
func (c *Config) ScheduleNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Schedules))
	for name := range c.Schedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
