package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/syssam/shapegen/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logger     = zap.NewNop()

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "shapegen",
	Short: "Shape-graph client code generator",
	Long: `shapegen - Shape-graph client code generator

shapegen reads a resolved shape-graph snapshot and generates a Go client:
constraint-violation types for every constrained shape, the service config
and builder, and one request preparation function per operation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		if logger, err = newLogger(verbose, quiet); err != nil {
			return cli.GeneralError("building logger", err)
		}
		cfg, configPath, err = cli.LoadConfig(cfgFile, cmd.Flags())
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover shapegen.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// newLogger builds the production logger. -v lowers the level to debug and
// -q raises it to errors only.
func newLogger(verbose int, quiet bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	switch {
	case quiet:
		zc.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case verbose > 0:
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}
