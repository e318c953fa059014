package cliconfig

import (
	"fmt"
	"strconv"
)

// Defaults for a processing run.
const (
	DefaultBatchSize   = 10
	DefaultSampleRate  = 1
	DefaultResultsDir  = "results"
	DefaultRegionsPath = "config/regions.json"
)

// Config holds CLI configuration for starship-analyzer.
type Config struct {
	VideoPath string
	RunID     string

	RegionsPath  string
	WatchRegions bool
	ResultsDir   string

	BatchSize         int
	SampleRate        int
	Workers           int
	AcceleratorShared bool

	StartFrame int
	EndFrame   int
	MaxFrames  int

	Debug bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		RegionsPath: DefaultRegionsPath,
		ResultsDir:  DefaultResultsDir,
		BatchSize:   DefaultBatchSize,
		SampleRate:  DefaultSampleRate,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.VideoPath == "" {
		return fmt.Errorf("video path is required")
	}
	if c.RunID == "" {
		return fmt.Errorf("launch id is required")
	}
	if c.RegionsPath == "" {
		c.RegionsPath = DefaultRegionsPath
	}
	if c.ResultsDir == "" {
		c.ResultsDir = DefaultResultsDir
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}
	if c.SampleRate < 1 {
		return fmt.Errorf("sample rate must be at least 1")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.StartFrame < 0 {
		return fmt.Errorf("start frame must not be negative")
	}
	if c.EndFrame != 0 && c.EndFrame <= c.StartFrame {
		return fmt.Errorf("end frame must be after start frame")
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("max frames must not be negative")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
