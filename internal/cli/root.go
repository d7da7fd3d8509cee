package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucrnz/durseq/internal/config"
	"github.com/lucrnz/durseq/internal/logging"
	"github.com/lucrnz/durseq/internal/version"
)

type rootOptions struct {
	logLevel   string
	logFormat  string
	configPath string

	cfg *config.Config
}

// NewRootCmd builds the durseq command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "durseq",
		Short: "Parse and use duration lists such as \"30s;5m*3,1h\"",
		Long: `durseq

Parses duration lists made of entries like "30s", "5m*3" or "1d" separated by ';' or ','.
Units: ms, s, m, h, d. A "*N" suffix repeats the entry N times.
`,
		Version:           version.Print(),
		PersistentPreRunE: opts.setup,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file with named schedules")

	// Silence usage output for runtime errors, but show it for flag errors
	// SilenceErrors is true so we can control error output format in main()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})

	rootCmd.AddCommand(
		newParseCmd(),
		newRunCmd(opts),
		newSchedulesCmd(opts),
	)

	return rootCmd
}

// setup loads the config file, if any, and attaches the logger to the
// command context.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		o.cfg = cfg

		flags := cmd.Flags()
		if !flags.Changed("log-level") && cfg.Log.Level != "" {
			o.logLevel = cfg.Log.Level
		}
		if !flags.Changed("log-format") && cfg.Log.Format != "" {
			o.logFormat = cfg.Log.Format
		}
	}

	logger, err := logging.New(o.logLevel, o.logFormat)
	if err != nil {
		return fmt.Errorf("invalid logging flags: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithContext(ctx, logger))
	return nil
}

// ExecuteContext runs the root command with ctx
func ExecuteContext(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Show usage for required flag errors (not caught by SetFlagErrorFunc)
		if strings.Contains(err.Error(), "required flag") {
			_ = rootCmd.Usage()
		}
		return err
	}
	return nil
}
