package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tasklist/app"
	"tasklist/config"
	"tasklist/logging"
	"tasklist/tui"
)

type Options struct {
	ConfigPath string
	LogFile    string
	LogLevel   string
	Inline     bool
}

// runProgram is swapped in tests so the root command can run without a terminal.
var runProgram = func(m tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func NewRootCmd() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "In-memory task list in your terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start with the default config
  tasklist

  # Trace every command to a file
  tasklist --log-file /tmp/tasklist.log --log-level debug
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to config file (default: $TASKLIST_CONFIG or <user config dir>/tasklist/config.yaml)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write debug log to this file (overrides log.file)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides log.level)")
	cmd.Flags().BoolVar(&opts.Inline, "inline", false, "Render inline instead of using the alternate screen")

	return cmd
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func run(opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	level, err := cfg.Log.ParsedLevel()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{File: cfg.Log.File, Level: level})
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()

	logger.Info("starting", "config", opts.ConfigPath, "inline", opts.Inline)
	svc := app.NewService(app.WithLogger(logger))
	model := tui.NewModel(svc, cfg, logger)

	var progOpts []tea.ProgramOption
	if !opts.Inline {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if err := runProgram(model, progOpts...); err != nil {
		logger.Error("program exited", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}
	done, due := svc.Screen().Counts()
	logger.Info("exiting", "done", done, "due", due)
	return nil
}
