package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/srt-combiner/internal/combiner"
	"github.com/nguyentantai21042004/srt-combiner/internal/config"
	"github.com/nguyentantai21042004/srt-combiner/internal/logger"
	"github.com/nguyentantai21042004/srt-combiner/internal/summarizer"
	"github.com/nguyentantai21042004/srt-combiner/internal/watcher"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	output     string
	recursive  bool
	extensions []string
	mode       string
	timestamps bool
	noBOM      bool
	docx       bool
	watch      bool
	summarize  bool
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "srtcombine [source-dir]",
		Short:         "Combine a folder of subtitle files into one document",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
			return run(ctx, cmd.OutOrStdout(), cfg, log)
		},
	}

	bindRootFlags(rootCmd, opts)
	rootCmd.AddCommand(newParseCommand())

	return rootCmd
}

func bindRootFlags(cmd *cobra.Command, opts *rootOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path (default "+config.DefaultPath+" when present)")
	flags.StringVarP(&opts.output, "output", "o", "", "Combined output file (default <source-dir>.srt next to the source)")
	flags.BoolVar(&opts.recursive, "recursive", true, "Include subdirectories")
	flags.StringSliceVar(&opts.extensions, "ext", nil, "Subtitle extensions to include (repeatable)")
	flags.StringVar(&opts.mode, "mode", "", "Output mode: raw or transcript")
	flags.BoolVar(&opts.timestamps, "timestamps", false, "Prefix transcript lines with cue start times")
	flags.BoolVar(&opts.noBOM, "no-bom", false, "Do not write a UTF-8 byte order mark")
	flags.BoolVar(&opts.docx, "docx", false, "Also export a DOCX transcript")
	flags.BoolVar(&opts.watch, "watch", false, "Rebuild the output whenever subtitles change")
	flags.BoolVar(&opts.summarize, "summarize", false, "Summarize the combined transcript with Gemini")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// resolveConfig loads the config file, then lets the positional source and
// any explicitly set flag override it.
func resolveConfig(cmd *cobra.Command, opts *rootOptions, args []string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if len(args) == 1 {
		cfg.Paths.Source = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Paths.Output = opts.output
	}
	if flags.Changed("recursive") {
		recursive := opts.recursive
		cfg.Combine.IncludeSubdirectories = &recursive
	}
	if flags.Changed("ext") {
		cfg.Combine.Extensions = opts.extensions
	}
	if flags.Changed("mode") {
		cfg.Combine.Mode = opts.mode
	}
	if flags.Changed("timestamps") {
		cfg.Combine.Timestamps = opts.timestamps
	}
	if flags.Changed("no-bom") {
		bom := !opts.noBOM
		cfg.Combine.WriteBOM = &bom
	}
	if flags.Changed("docx") {
		cfg.Export.Docx = opts.docx
	}
	if flags.Changed("watch") {
		cfg.Watch.Enabled = opts.watch
	}
	if flags.Changed("summarize") {
		cfg.Gemini.Enabled = opts.summarize
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// run performs one combine, then keeps rebuilding when watch mode is on.
func run(ctx context.Context, out io.Writer, cfg *config.Config, log logger.Logger) error {
	opts := combiner.OptionsFromConfig(cfg)
	comb := combiner.New(opts, log)

	var summ summarizer.Summarizer
	if cfg.Gemini.Enabled {
		s, err := summarizer.New(summarizer.OptionsFromConfig(cfg), log)
		if err != nil {
			return fmt.Errorf("init summarizer: %w", err)
		}
		summ = s
	}

	err := combineOnce(ctx, out, comb, summ)
	if !cfg.Watch.Enabled {
		return err
	}
	if err != nil {
		if !errors.Is(err, combiner.ErrNoFiles) {
			return err
		}
		log.Warn(ctx, "Nothing to combine yet, waiting for subtitle files...")
	}

	w, err := watcher.New(watcher.Options{
		Root:       opts.SourceDir,
		Recursive:  opts.Recursive,
		Extensions: opts.Extensions,
		Ignore:     []string{opts.OutputPath, opts.DocxPath},
		Debounce:   time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
	}, func(ctx context.Context, filePath string) error {
		// Summaries are only produced by the initial run.
		return combineOnce(ctx, out, comb, nil)
	}, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// combineOnce runs the combiner, prints the per-file table and optionally
// summarizes the result.
func combineOnce(ctx context.Context, out io.Writer, comb combiner.Combiner, summ summarizer.Summarizer) error {
	result, err := comb.Combine(ctx)
	if result != nil {
		fmt.Fprintln(out, renderResultTable(result, shouldColorize(out)))
	}
	if err != nil {
		return err
	}

	if summ != nil {
		if _, err := summ.Summarize(ctx, result.OutputPath); err != nil {
			return err
		}
	}
	return nil
}
