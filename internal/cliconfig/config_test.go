package cliconfig

import "testing"

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.VideoPath = "launch.mp4"
	cfg.RunID = "7"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.SampleRate != DefaultSampleRate {
		t.Errorf("SampleRate = %d, want %d", cfg.SampleRate, DefaultSampleRate)
	}
	if cfg.RegionsPath != DefaultRegionsPath {
		t.Errorf("RegionsPath = %q, want %q", cfg.RegionsPath, DefaultRegionsPath)
	}
	if cfg.ResultsDir != DefaultResultsDir {
		t.Errorf("ResultsDir = %q, want %q", cfg.ResultsDir, DefaultResultsDir)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (auto)", cfg.Workers)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing video", func(c *Config) { c.VideoPath = "" }, true},
		{"missing launch id", func(c *Config) { c.RunID = "" }, true},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, true},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"negative start frame", func(c *Config) { c.StartFrame = -1 }, true},
		{"end before start", func(c *Config) { c.StartFrame = 100; c.EndFrame = 50 }, true},
		{"open end frame", func(c *Config) { c.StartFrame = 100; c.EndFrame = 0 }, false},
		{"negative max frames", func(c *Config) { c.MaxFrames = -1 }, true},
		{"explicit window", func(c *Config) { c.StartFrame = 10; c.EndFrame = 20 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRestoresEmptyDerivedPaths(t *testing.T) {
	cfg := validConfig()
	cfg.RegionsPath = ""
	cfg.ResultsDir = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.RegionsPath != DefaultRegionsPath {
		t.Errorf("RegionsPath = %q after validate", cfg.RegionsPath)
	}
	if cfg.ResultsDir != DefaultResultsDir {
		t.Errorf("ResultsDir = %q after validate", cfg.ResultsDir)
	}
}
