package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/adapters/resultfs"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/adapters/tessexec"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/adapters/videoexec"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/cliconfig"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/extract"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/pipeline"
	"github.com/sanitaravel/starship-analyzer-sub000/internal/regions"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

const helpDescription = `
Extract flight telemetry from Starship launch broadcast recordings.

Speed, altitude, engine states and propellant levels are read off the
broadcast overlay frame by frame and written as JSON, timestamped
relative to liftoff. Needs ffmpeg, ffprobe and tesseract on PATH.
`

var exampleUsage = strings.TrimSpace(`
  starship-analyzer analyze --video flight7.mp4 --launch 7
  starship-analyzer analyze --video flight7.mp4 --launch 7 --sample-rate 30 --workers 4
  starship-analyzer frame --video flight7.mp4 --launch 7 --frame 12000
  starship-analyzer regions --regions config/regions.json --frame 12000
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "starship-analyzer",
		Short:   "Extract flight telemetry from Starship launch broadcasts",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.starship-analyzer/config.toml)")
	root.PersistentFlags().StringVar(&cfg.VideoPath, "video", cfg.VideoPath, "path to the launch recording")
	root.PersistentFlags().StringVar(&cfg.RunID, "launch", cfg.RunID, "launch identifier, keys the results directory")
	root.PersistentFlags().StringVar(&cfg.RegionsPath, "regions", cfg.RegionsPath, "path to the region configuration file")
	root.PersistentFlags().StringVar(&cfg.ResultsDir, "results-dir", cfg.ResultsDir, "directory results are written under")
	root.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	analyze := &cobra.Command{
		Use:   "analyze",
		Short: "Process a full recording into a telemetry JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loadConfig(cmd, &cfg, cfgPath)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cfg, logger)
		},
	}
	analyze.Flags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "maximum sampled frames per batch")
	analyze.Flags().IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "process every Nth frame")
	analyze.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "worker count (0 sizes from CPU cores)")
	analyze.Flags().BoolVar(&cfg.AcceleratorShared, "shared-accelerator", cfg.AcceleratorShared, "halve the automatic worker count for a shared recognition accelerator")
	analyze.Flags().IntVar(&cfg.StartFrame, "start-frame", cfg.StartFrame, "first frame to process")
	analyze.Flags().IntVar(&cfg.EndFrame, "end-frame", cfg.EndFrame, "frame to stop before (0 = end of video)")
	analyze.Flags().IntVar(&cfg.MaxFrames, "max-frames", cfg.MaxFrames, "cap on the processed window (0 = no cap)")
	analyze.Flags().BoolVar(&cfg.WatchRegions, "watch-regions", cfg.WatchRegions, "reload the region configuration when the file changes")

	var frameNumber int
	frame := &cobra.Command{
		Use:   "frame",
		Short: "Extract telemetry from a single frame and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loadConfig(cmd, &cfg, cfgPath)
			if err != nil {
				return err
			}
			return runFrame(cmd.Context(), cfg, frameNumber, logger)
		},
	}
	frame.Flags().IntVar(&frameNumber, "frame", 0, "frame number to extract")

	var regionsFrame int
	regionsCmd := &cobra.Command{
		Use:   "regions",
		Short: "List configured overlay regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewConsole(cfg.Debug)
			return runRegions(cfg, regionsFrame, logger)
		},
	}
	regionsCmd.Flags().IntVar(&regionsFrame, "frame", -1, "only list regions active at this frame (-1 = all)")

	root.AddCommand(analyze, frame, regionsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "starship-analyzer:", err)
		os.Exit(1)
	}
}

// loadConfig layers file and environment configuration under the flags the
// user set explicitly, then validates the result.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) (log.Logger, error) {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	cmd.Root().PersistentFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return nil, err
		}
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.NewConsole(cfg.Debug)
	logger.Info("configuration loaded",
		log.String("video", cfg.VideoPath),
		log.String("launch", cfg.RunID),
		log.String("regions", cfg.RegionsPath),
		log.Int("batch_size", cfg.BatchSize),
		log.Int("sample_rate", cfg.SampleRate))
	return logger, nil
}

func runAnalyze(ctx context.Context, cfg cliconfig.Config, logger log.Logger) error {
	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Info("system memory",
			log.Any("total_mb", vm.Total/(1<<20)),
			log.Any("available_mb", vm.Available/(1<<20)))
	}

	dir := regions.NewDirectory(cfg.RegionsPath, logger)
	if err := dir.Reload(); err != nil {
		return fmt.Errorf("load regions: %w", err)
	}

	if cfg.WatchRegions {
		watcher := regions.NewWatcher(dir, logger)
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("region watcher unavailable", log.Err(err))
		} else {
			defer watcher.Stop()
		}
	}

	extractor := extract.NewExtractor(dir, tessexec.NewRecognizer(logger), logger)
	runner := pipeline.NewRunner(pipeline.Config{
		VideoPath:         cfg.VideoPath,
		RunID:             cfg.RunID,
		BatchSize:         cfg.BatchSize,
		SampleRate:        cfg.SampleRate,
		Workers:           cfg.Workers,
		AcceleratorShared: cfg.AcceleratorShared,
		StartFrame:        cfg.StartFrame,
		EndFrame:          cfg.EndFrame,
		MaxFrames:         cfg.MaxFrames,
	},
		videoexec.NewOpener(logger),
		extractor,
		tessexec.NewRecognizer(logger),
		resultfs.NewRepository(cfg.ResultsDir, logger),
		logger)

	path, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// runFrame extracts a single frame and prints the record, for calibrating
// region coordinates against a specific moment of the broadcast.
func runFrame(ctx context.Context, cfg cliconfig.Config, frameNumber int, logger log.Logger) error {
	dir := regions.NewDirectory(cfg.RegionsPath, logger)
	if err := dir.Reload(); err != nil {
		return fmt.Errorf("load regions: %w", err)
	}

	src, err := videoexec.NewOpener(logger).Open(cfg.VideoPath)
	if err != nil {
		return err
	}
	defer src.Release()

	if err := src.Seek(frameNumber); err != nil {
		return err
	}
	img, err := src.ReadNext()
	if err != nil {
		return fmt.Errorf("decode frame %d: %w", frameNumber, err)
	}

	extractor := extract.NewExtractor(dir, tessexec.NewRecognizer(logger), logger)
	record := extractor.Extract(ctx, img, frameNumber, extract.ClockSearching)

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runRegions(cfg cliconfig.Config, frameNumber int, logger log.Logger) error {
	dir := regions.NewDirectory(cfg.RegionsPath, logger)
	if err := dir.Reload(); err != nil {
		return fmt.Errorf("load regions: %w", err)
	}

	var idx *int
	if frameNumber >= 0 {
		idx = &frameNumber
	}
	for _, region := range dir.ActiveRegions(idx) {
		window := "always"
		if region.StartFrame != nil || region.EndFrame != nil {
			from, to := "start", "end"
			if region.StartFrame != nil {
				from = fmt.Sprint(*region.StartFrame)
			}
			if region.EndFrame != nil {
				to = fmt.Sprint(*region.EndFrame)
			}
			window = fmt.Sprintf("[%s, %s)", from, to)
		}
		fmt.Printf("%-20s %-14s %4dx%-4d at (%d,%d)  %s\n",
			region.ID, region.Role, region.W, region.H, region.X, region.Y, window)
	}
	return nil
}
