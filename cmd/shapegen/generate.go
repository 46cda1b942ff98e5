package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/shapegen/compiler/gen"
	"github.com/syssam/shapegen/compiler/load"
	"github.com/syssam/shapegen/internal/cli"
)

const debounce = 200 * time.Millisecond

var generateWatch bool

var generateCmd = &cobra.Command{
	Use:   "generate [model-file]",
	Short: "Generate client code from a model snapshot",
	Long: `Generate the Go client of every service in a shape-graph snapshot.

The snapshot format (JSON, YAML or msgpack) is inferred from the file
extension. Flags override SHAPEGEN_* environment variables, which override
the config file.`,
	Example: `  # Generate from a snapshot
  shapegen generate model.json --target ./client --package example.com/tags/client

  # Export the constraint-violation types and regenerate on change
  shapegen generate model.yaml --public-constrained-types --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) > 0 {
			arg = args[0]
		}
		model := cfg.ResolvedModel(arg)
		if model == "" {
			return cli.ConfigError("missing model", errors.New("pass a model file or set model in shapegen.yaml"))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runGenerate(ctx, model); err != nil {
			return err
		}
		if generateWatch {
			return watch(ctx, model)
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.String("target", "", "output directory")
	f.String("package", "", "import path of the generated root package")
	f.String("header", "", "header comment of every generated file")
	f.Bool("public-constrained-types", false, "export the constraint-violation types")
	f.String("runtime-package", "", "import path of the runtime support module")
	f.Int("workers", 0, "number of files rendered in parallel (default: GOMAXPROCS)")
	f.StringSlice("decorators", nil, "enabled features (default: all default features)")
	f.BoolVarP(&generateWatch, "watch", "w", false, "regenerate when the model file changes")
}

// runGenerate loads the model and writes the generated files.
func runGenerate(ctx context.Context, model string) error {
	m, err := load.LoadFile(model)
	if err != nil {
		if load.IsModelError(err) {
			return cli.ModelError("loading model", err)
		}
		return cli.GeneralError("loading model", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		return cli.ConfigError("resolving decorators", err)
	}
	gc, err := gen.NewConfig(append(opts, gen.WithLogger(logger))...)
	if err != nil {
		return cli.ConfigError("invalid configuration", err)
	}
	g, err := gen.NewGenerator(gc, m)
	if err != nil {
		return cli.ConfigError("invalid configuration", err)
	}
	if err := g.Generate(ctx); err != nil {
		if gen.IsConstraintError(err) {
			return cli.ConfigError("unsupported constraint", err)
		}
		return cli.GeneralError("generating code", err)
	}
	if !quiet {
		fmt.Printf("Generated %s from %s\n", gc.Target, model)
	}
	return nil
}

// watch regenerates the client whenever the model file is written, until
// ctx is done. Failed runs are logged and do not stop the watch.
func watch(ctx context.Context, model string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return cli.GeneralError("starting watcher", err)
	}
	defer func() { _ = w.Close() }()

	abs, err := filepath.Abs(model)
	if err != nil {
		return cli.GeneralError("resolving model path", err)
	}
	// Editors replace files on save, so the directory is watched.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return cli.GeneralError("watching model", err)
	}
	logger.Info("watching model", zap.String("path", abs))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			logger.Debug("model changed", zap.String("path", abs))
			if err := runGenerate(ctx, model); err != nil {
				logger.Error("regeneration failed", zap.Error(err))
			}
		}
	}
}
