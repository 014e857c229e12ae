package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fenilsonani/wordguard/internal/config"
	"github.com/fenilsonani/wordguard/internal/controller"
	"github.com/fenilsonani/wordguard/internal/output"
	"github.com/fenilsonani/wordguard/internal/platform"
	"github.com/fenilsonani/wordguard/internal/progress"
	"github.com/fenilsonani/wordguard/internal/reporter"
	"github.com/fenilsonani/wordguard/internal/scanner"
	"github.com/fenilsonani/wordguard/internal/ui"
)

var (
	wordsFile   string
	inlineWords []string
	outputDir   string
	excludes    []string
	workers     int
	interactive bool
	format      string
	keepBoth    bool
	quiet       bool
	reportFile  string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path...]",
	Short: "Scan paths for forbidden words",
	Long: `Walks the given paths, or every local drive when none are given, and copies
each file containing a forbidden word to the output directory together with a
redacted version. Send SIGUSR1 to pause or resume, Ctrl+C to stop early.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&wordsFile, "words", "w", "", "file with forbidden words, one word per line")
	scanCmd.Flags().StringSliceVar(&inlineWords, "word", nil, "forbidden word (repeatable)")
	scanCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	scanCmd.Flags().StringSliceVar(&excludes, "exclude", nil, "glob pattern to skip (repeatable)")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "roots walked at once (0 uses config)")
	scanCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "run with the interactive TUI")
	scanCmd.Flags().StringVarP(&format, "format", "f", "", "summary format (text, json, yaml, table)")
	scanCmd.Flags().BoolVar(&keepBoth, "keep-both", false, "keep earlier copies when file names collide")
	scanCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print each matched file")
	scanCmd.Flags().StringVar(&reportFile, "report-file", "", "also save the summary to this file")
}

// applyFlags overrides the loaded config with the flags the user set
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("words") {
		cfg.WordsFile = wordsFile
	}
	if flags.Changed("word") {
		cfg.Words = append(cfg.Words, inlineWords...)
	}
	if flags.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("exclude") {
		cfg.ExcludePattern = append(cfg.ExcludePattern, excludes...)
	}
	if flags.Changed("workers") && workers > 0 {
		cfg.Workers = workers
	}
	if flags.Changed("format") {
		cfg.ReportFormat = format
	}
	if keepBoth {
		cfg.CollisionPolicy = string(output.PolicyKeepBoth)
	}
}

// scanRoots picks what to scan: arguments, then configured roots, then every
// local drive. skip holds extra directories to leave out for whole-drive scans.
func scanRoots(ctx context.Context, cfg *config.Config, args []string) (roots, skip []string, err error) {
	if len(args) > 0 {
		return platform.CollapseRoots(expandPaths(args)), nil, nil
	}
	if r := cfg.ResolveRoots(); len(r) > 0 {
		return platform.CollapseRoots(r), nil, nil
	}

	roots, err = platform.Roots(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list drives: %w", err)
	}
	if info, err := platform.GetInfo(); err == nil {
		skip = info.SkipDirs
	}
	return roots, skip, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	set, err := cfg.LoadWords()
	if err != nil {
		return err
	}
	if set.Empty() {
		return fmt.Errorf("no forbidden words given, use --words or --word")
	}

	summaryFormat, err := reporter.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return err
	}

	dir, err := cfg.ResolveOutputDir()
	if err != nil {
		return err
	}
	store, err := output.NewStore(dir, output.CollisionPolicy(cfg.CollisionPolicy))
	if err != nil {
		return err
	}

	roots, platformSkips, err := scanRoots(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	prog := progress.NewReporter()
	opts := []controller.Option{
		controller.WithLogger(logger),
		controller.WithProgressReporter(prog),
		controller.WithWorkers(cfg.Workers),
		controller.WithPollInterval(cfg.PollInterval()),
		controller.WithWalkerOptions(
			scanner.WithExcludes(cfg.ExcludePattern...),
			scanner.WithSkipDirs(append(cfg.ResolveSkipDirs(), platformSkips...)...),
			scanner.WithMaxFileSize(cfg.MaxFileSizeBytes()),
		),
	}

	logger.Debug("scan configured",
		zap.Strings("roots", roots),
		zap.String("output", store.Dir()),
		zap.Int("words", set.Len()))

	var ctrl *controller.Controller
	if interactive {
		cb := &ui.ProgramCallbacks{}
		ctrl = controller.New(store, cb, opts...)
		start := func() error { return ctrl.Start(roots, set) }
		if err := ui.RunInteractive(cb, ctrl, start, store.Dir()); err != nil {
			return err
		}
		// the TUI quits on OnCompleted, just before the run goroutine exits
		if err := ctrl.Wait(context.Background()); err != nil {
			return err
		}
	} else {
		live := ui.NewLiveProgress(os.Stderr)
		live.SetQuiet(quiet)
		ctrl = controller.New(store, live, opts...)
		if err := ctrl.Start(roots, set); err != nil {
			return err
		}
		waitWithSignals(cmd.Context(), ctrl, prog, logger)
	}

	report, ok := ctrl.Report()
	if !ok {
		return nil
	}

	out := cmd.OutOrStdout()
	if err := reporter.New(out, summaryFormat).Write(report); err != nil {
		return err
	}
	if summaryFormat == reporter.FormatTable || summaryFormat == reporter.FormatText {
		fmt.Fprintf(out, "\nOutput written to %s\n", store.Dir())
	}

	if reportFile != "" {
		if err := reporter.SaveToFile(report, reportFile, summaryFormat); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report saved to: %s\n", reportFile)
	}

	return nil
}

// waitWithSignals blocks until the scan completes. Interrupts cancel the scan;
// the pause signal toggles pause. Phase changes are logged.
func waitWithSignals(ctx context.Context, ctrl *controller.Controller, prog *progress.Reporter, logger *zap.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, stopSignals...)
	defer signal.Stop(stop)

	pause := make(chan os.Signal, 1)
	if len(pauseSignals) > 0 {
		signal.Notify(pause, pauseSignals...)
		defer signal.Stop(pause)
	}

	updates := prog.Subscribe()
	defer prog.Unsubscribe(updates)
	phase := prog.Snapshot().Phase

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Wait(context.Background())
	}()

	for {
		select {
		case <-done:
			return
		case s, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			if s.Phase != phase {
				phase = s.Phase
				logger.Debug("scan phase changed",
					zap.String("phase", string(phase)),
					zap.String("status", progress.FormatScanProgress(s)))
			}
		case <-ctx.Done():
			_ = ctrl.Cancel()
			ctx = context.Background()
		case <-stop:
			logger.Info("interrupt received, cancelling scan")
			if err := ctrl.Cancel(); err != nil {
				logger.Debug("cancel ignored", zap.Error(err))
			}
		case <-pause:
			status, err := togglePause(ctrl)
			if err != nil {
				logger.Debug("pause toggle ignored", zap.Error(err))
				continue
			}
			logger.Info(status)
		}
	}
}

// togglePause pauses or resumes the scan and describes where it now stands
func togglePause(ctrl *controller.Controller) (string, error) {
	if err := ctrl.TogglePause(); err != nil {
		return "", err
	}
	return progress.FormatScanProgress(ctrl.Progress()), nil
}

func expandPaths(paths []string) []string {
	home, _ := os.UserHomeDir()
	expanded := make([]string, 0, len(paths))
	for _, p := range paths {
		expanded = append(expanded, config.ExpandPath(p, home))
	}
	return expanded
}
