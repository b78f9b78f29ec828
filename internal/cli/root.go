// Package cli implements the stylectl command line: it imports workbook
// styles into a stylesheet and prints the interned tables or the resolved
// properties of a single cell.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	styles "github.com/goliatone/go-styles"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

type loggerKey struct{}

// NewRootCmd builds the stylectl command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "stylectl",
		Short: "Inspect and resolve spreadsheet cell styles",
		Long: `stylectl imports the cell styles of an .xlsx workbook into an interned
stylesheet. It can list the deduplicated style tables, or resolve one cell's
properties through its override chain and report which level supplied each.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level, _ := cfg.Level()
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./stylectl.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table|json)")
	rootCmd.PersistentFlags().StringP("sheet", "s", "", "Worksheet name (default: first sheet)")
	rootCmd.PersistentFlags().Bool("locking", false, "Guard style tables with a mutex")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OutputTable, OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newResolveCellCommand())
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func configFrom(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return &Config{LogLevel: DefaultLogLevel, Output: DefaultOutput}
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stylesheetOptions maps the configuration onto stylesheet options.
func stylesheetOptions(ctx context.Context) []styles.Option {
	cfg := configFrom(ctx)
	opts := []styles.Option{styles.WithLogger(styles.NewSlogLogger(loggerFrom(ctx)))}
	if cfg.Locking {
		opts = append(opts, styles.WithLocking())
	}
	return opts
}
