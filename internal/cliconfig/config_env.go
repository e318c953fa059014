package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (STARSHIP_*). It respects flags that have been explicitly set.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("video", os.Getenv("STARSHIP_VIDEO_PATH"), &cfg.VideoPath)
	s.setString("launch", os.Getenv("STARSHIP_LAUNCH"), &cfg.RunID)
	s.setString("regions", os.Getenv("STARSHIP_REGIONS_PATH"), &cfg.RegionsPath)
	s.setString("results-dir", os.Getenv("STARSHIP_RESULTS_DIR"), &cfg.ResultsDir)

	if err := s.setIntFromString("batch-size", os.Getenv("STARSHIP_BATCH_SIZE"), &cfg.BatchSize); err != nil {
		return err
	}
	if err := s.setIntFromString("sample-rate", os.Getenv("STARSHIP_SAMPLE_RATE"), &cfg.SampleRate); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("STARSHIP_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setIntFromString("start-frame", os.Getenv("STARSHIP_START_FRAME"), &cfg.StartFrame); err != nil {
		return err
	}
	if err := s.setIntFromString("end-frame", os.Getenv("STARSHIP_END_FRAME"), &cfg.EndFrame); err != nil {
		return err
	}
	if err := s.setIntFromString("max-frames", os.Getenv("STARSHIP_MAX_FRAMES"), &cfg.MaxFrames); err != nil {
		return err
	}

	s.setBoolFromString("watch-regions", os.Getenv("STARSHIP_WATCH_REGIONS"), &cfg.WatchRegions)
	s.setBoolFromString("shared-accelerator", os.Getenv("STARSHIP_SHARED_ACCELERATOR"), &cfg.AcceleratorShared)
	s.setBoolFromString("debug", os.Getenv("STARSHIP_DEBUG"), &cfg.Debug)

	return nil
}
