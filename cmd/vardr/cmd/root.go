package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vardr/utmp/pkg/codec"
	"github.com/vardr/utmp/pkg/config"
	"github.com/vardr/utmp/pkg/parse"
)

// Shared by every subcommand, populated by the root PersistentPreRunE.
var (
	cfg    *config.Config
	layout codec.Layout
	logger *zap.Logger
)

var (
	flagConfig string
	flagLayout string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vardr",
	Short: "vardr - session accounting log inspector",
	Long: `Vardr reads utmp/wtmp session accounting files and reports
logins, logouts, boots and run-level changes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath := flagConfig
		if configPath == "" {
			configPath = config.DefaultConfigPath()
		}
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
		}

		if flagLayout != "" {
			cfg.Layout = flagLayout
		}
		resolved, err := config.ResolveLayout(cfg.Layout)
		if err != nil {
			return err
		}
		layout = resolved

		logger, err = newLogger(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVarP(&flagLayout, "layout", "l", "", "Record layout: native, x32 or x64")
}

// openParser opens path with the layout selected by config or flags.
// The native layout resolves to one of the two explicit ones at
// compile time, so two cases cover all three names.
func openParser(path string) (*parse.Parser, error) {
	switch layout {
	case codec.Layout64:
		return parse.OpenFile64(path)
	default:
		return parse.OpenFile32(path)
	}
}

// decodedEntries drains the file, logging and skipping records that
// cannot be decoded so one corrupt record never hides its neighbors.
func decodedEntries(path string) ([]codec.Entry, error) {
	p, err := openParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	var entries []codec.Entry
	for _, res := range p.Results() {
		if res.Err != nil {
			logger.Warn("skipping unreadable record",
				zap.String("file", path),
				zap.Error(res.Err))
			continue
		}
		entries = append(entries, res.Entry)
	}
	return entries, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
