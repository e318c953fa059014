package cliconfig

import "testing"

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("STARSHIP_VIDEO_PATH", "env.mp4")
	t.Setenv("STARSHIP_LAUNCH", "11")
	t.Setenv("STARSHIP_BATCH_SIZE", "40")
	t.Setenv("STARSHIP_SAMPLE_RATE", "2")
	t.Setenv("STARSHIP_SHARED_ACCELERATOR", "true")
	t.Setenv("STARSHIP_DEBUG", "1")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig() error: %v", err)
	}

	if cfg.VideoPath != "env.mp4" || cfg.RunID != "11" {
		t.Fatalf("identity fields = %q, %q", cfg.VideoPath, cfg.RunID)
	}
	if cfg.BatchSize != 40 || cfg.SampleRate != 2 {
		t.Fatalf("numeric fields = %d, %d", cfg.BatchSize, cfg.SampleRate)
	}
	if !cfg.AcceleratorShared {
		t.Error("STARSHIP_SHARED_ACCELERATOR=true not applied")
	}
	if !cfg.Debug {
		t.Error("STARSHIP_DEBUG=1 not applied")
	}
}

func TestApplyEnvConfigRespectsChangedFlags(t *testing.T) {
	t.Setenv("STARSHIP_VIDEO_PATH", "env.mp4")
	t.Setenv("STARSHIP_BATCH_SIZE", "40")

	cfg := DefaultConfig()
	cfg.VideoPath = "flag.mp4"
	cfg.BatchSize = 5

	changed := map[string]bool{"video": true, "batch-size": true}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig() error: %v", err)
	}

	if cfg.VideoPath != "flag.mp4" {
		t.Errorf("env overrode explicit --video: %q", cfg.VideoPath)
	}
	if cfg.BatchSize != 5 {
		t.Errorf("env overrode explicit --batch-size: %d", cfg.BatchSize)
	}
}

func TestApplyEnvConfigRejectsGarbageNumbers(t *testing.T) {
	t.Setenv("STARSHIP_BATCH_SIZE", "ten")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Fatal("expected error for non-numeric STARSHIP_BATCH_SIZE")
	}
}

func TestApplyEnvConfigIgnoresNonPositiveNumbers(t *testing.T) {
	t.Setenv("STARSHIP_WORKERS", "0")
	t.Setenv("STARSHIP_BATCH_SIZE", "-3")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig() error: %v", err)
	}
	if cfg.Workers != 0 || cfg.BatchSize != DefaultBatchSize {
		t.Fatalf("non-positive env values disturbed config: %+v", cfg)
	}
}
