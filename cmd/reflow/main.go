// Package main is the entry point for the reflow editor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/reflow/internal/app"
	"github.com/dshills/reflow/internal/config"
	"github.com/dshills/reflow/internal/logging"
	"github.com/dshills/reflow/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// flags holds the command line settings.
type flags struct {
	configPath string
	logLevel   string
	logFile    string
	measurer   string
	wrapWidth  int
	fontSize   int
	watch      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflow [path]",
		Short: "A single-panel terminal editor with live line wrapping",
		Long: `reflow edits one line of text in the terminal and wraps it to the
panel width as you type.

Keys:
  any character   append to the cursor's line
  Backspace       remove the last character
  Esc, Ctrl-C     quit

The optional path names the buffer; files are not read or written.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flagsFrom(cmd), args)
		},
	}

	cmd.Flags().StringP("config", "c", config.DefaultPath(), "config file (TOML or YAML)")
	cmd.Flags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().String("log-file", "", "log file (default reflow.log next to the config file)")
	cmd.Flags().String("measurer", "", "width measurer (cells, graphemes, font, monospace)")
	cmd.Flags().Int("wrap-width", 0, "wrap width; 0 wraps at the panel width")
	cmd.Flags().Int("font-size", 0, "nominal font size passed to the measurer")
	cmd.Flags().Bool("watch", true, "reload the config file when it changes")

	return cmd
}

// flagsFrom reads the parsed flags of cmd.
func flagsFrom(cmd *cobra.Command) flags {
	fs := cmd.Flags()
	var f flags
	f.configPath, _ = fs.GetString("config")
	f.logLevel, _ = fs.GetString("log-level")
	f.logFile, _ = fs.GetString("log-file")
	f.measurer, _ = fs.GetString("measurer")
	f.wrapWidth, _ = fs.GetInt("wrap-width")
	f.fontSize, _ = fs.GetInt("font-size")
	f.watch, _ = fs.GetBool("watch")
	return f
}

// resolveConfig loads the config file and applies the flags the user set.
func resolveConfig(cmd *cobra.Command, f flags, args []string) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	applyFlags(cmd, f, cfg)
	if len(args) > 0 {
		cfg.Panel.Path = args[0]
	}

	// The terminal owns stdout and stderr while the editor runs.
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(f.configPath), "reflow.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on the command line. It also
// runs on every reloaded config so flags keep precedence over the file.
func applyFlags(cmd *cobra.Command, f flags, cfg *config.Config) {
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if cmd.Flags().Changed("measurer") {
		cfg.Editor.Measurer = f.measurer
	}
	if cmd.Flags().Changed("wrap-width") {
		cfg.Editor.WrapWidth = f.wrapWidth
	}
	if cmd.Flags().Changed("font-size") {
		cfg.Editor.FontSize = f.fontSize
	}
}

func run(cmd *cobra.Command, f flags, args []string) error {
	cfg, err := resolveConfig(cmd, f, args)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return fmt.Errorf("log directory: %w", err)
	}
	logger := logging.New(cfg.Logging())
	defer logger.Close()
	logger.Info("reflow %s starting, config %s", version, f.configPath)

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}

	application, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: f.configPath,
		Watch:      f.watch && dirExists(filepath.Dir(f.configPath)),
		Overrides:  func(c *config.Config) { applyFlags(cmd, f, c) },
		Backend:    term,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer application.Close()

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("run: %v", err)
		return err
	}

	s := application.Metrics().Snapshot()
	logger.Info("exit after %s: %d inputs, %d frames, %d rejected edits",
		s.Uptime, s.InputCount, s.RenderCount, s.RejectedEdits)
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
