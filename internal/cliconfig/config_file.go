package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly optional fields.
type FileConfig struct {
	VideoPath         string `toml:"video_path"`
	RunID             string `toml:"launch"`
	RegionsPath       string `toml:"regions_path"`
	WatchRegions      *bool  `toml:"watch_regions"`
	ResultsDir        string `toml:"results_dir"`
	BatchSize         int    `toml:"batch_size"`
	SampleRate        int    `toml:"sample_rate"`
	Workers           int    `toml:"workers"`
	AcceleratorShared *bool  `toml:"accelerator_shared"`
	StartFrame        int    `toml:"start_frame"`
	EndFrame          int    `toml:"end_frame"`
	MaxFrames         int    `toml:"max_frames"`
	Debug             *bool  `toml:"debug"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.starship-analyzer/config.toml when the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".starship-analyzer", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("video", fc.VideoPath, &cfg.VideoPath)
	s.setString("launch", fc.RunID, &cfg.RunID)
	s.setString("regions", fc.RegionsPath, &cfg.RegionsPath)
	s.setString("results-dir", fc.ResultsDir, &cfg.ResultsDir)

	s.setInt("batch-size", fc.BatchSize, &cfg.BatchSize)
	s.setInt("sample-rate", fc.SampleRate, &cfg.SampleRate)
	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setInt("start-frame", fc.StartFrame, &cfg.StartFrame)
	s.setInt("end-frame", fc.EndFrame, &cfg.EndFrame)
	s.setInt("max-frames", fc.MaxFrames, &cfg.MaxFrames)

	s.setBool("watch-regions", fc.WatchRegions, &cfg.WatchRegions)
	s.setBool("shared-accelerator", fc.AcceleratorShared, &cfg.AcceleratorShared)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
