package gen

import (
	"bytes"
	"context"
	"path"
	"slices"
	"sync"

	"github.com/dave/jennifer/jen"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/shapegen/shape"
)

// DefaultHeader is written at the top of generated files when Config.Header
// is empty.
const DefaultHeader = "Code generated by shapegen. DO NOT EDIT."

// Generator renders a model into Go files.
//
// Planning runs sequentially and decides every file and its content
// inputs; rendering runs the planned files in parallel. Each file is
// rendered from read-only state, so the output is identical for every run
// and every worker count.
type Generator struct {
	cfg      *Config
	model    *shape.Model
	registry *Registry
	log      *zap.Logger

	values     SymbolProvider
	violations SymbolProvider
	reach      *shape.Reachability
}

// NewGenerator returns a generator for m.
//
// Example:
//
//	cfg, _ := gen.NewConfig(gen.WithPackage("example.com/tags/client"), gen.WithTarget("client"))
//	g, _ := gen.NewGenerator(cfg, model)
//	err := g.Generate(ctx)
func NewGenerator(cfg *Config, m *shape.Model) (*Generator, error) {
	if cfg == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, NewGenerationError("plan", "", "model cannot be nil", nil)
	}
	return &Generator{
		cfg:        cfg,
		model:      m,
		registry:   NewRegistry(cfg.Decorators...),
		log:        cfg.logger(),
		values:     NewValueSymbolProvider(m, cfg.ModelPackage()),
		violations: NewConstraintViolationSymbolProvider(cfg.ModelPackage()),
		reach:      m.InputReachability(),
	}, nil
}

// Registry returns the decorator registry of the generator.
func (g *Generator) Registry() *Registry {
	return g.registry
}

// file is one planned output file.
type file struct {
	// rel is the slash separated path relative to the target directory.
	rel    string
	render func() (*jen.File, error)
}

// Files returns the relative paths of every file Generate would write,
// sorted.
func (g *Generator) Files() ([]string, error) {
	plan, err := g.plan()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(plan))
	for i, f := range plan {
		paths[i] = f.rel
	}
	slices.Sort(paths)
	return paths, nil
}

// GenerateFiles renders every file in memory, keyed by relative path.
func (g *Generator) GenerateFiles(ctx context.Context) (map[string][]byte, error) {
	runID := uuid.NewString()
	log := g.log.With(zap.String("run", runID))

	plan, err := g.plan()
	if err != nil {
		return nil, err
	}
	log.Debug("planned generation",
		zap.Int("files", len(plan)),
		zap.Strings("decorators", g.registry.Names()),
		zap.Bool("public_constrained_types", g.cfg.PublicConstrainedTypes),
	)

	var (
		mu  sync.Mutex
		out = make(map[string][]byte, len(plan))
	)
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.cfg.workers())
	for _, f := range plan {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			jf, err := f.render()
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := jf.Render(&buf); err != nil {
				return NewGenerationError("render", f.rel, "", err)
			}
			mu.Lock()
			out[f.rel] = buf.Bytes()
			mu.Unlock()
			log.Debug("rendered file", zap.String("file", f.rel), zap.Int("bytes", buf.Len()))
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	log.Info("generation complete", zap.Int("files", len(out)))
	return out, nil
}

// Generate renders every file and writes it under Config.Target.
func (g *Generator) Generate(ctx context.Context) error {
	files, err := g.GenerateFiles(ctx)
	if err != nil {
		return err
	}
	w := NewWriter(g.cfg.Target).WithWorkers(g.cfg.workers())
	if err := w.WriteAll(ctx, files); err != nil {
		return err
	}
	m := w.Metrics()
	g.log.Info("files written",
		zap.String("target", g.cfg.Target),
		zap.Int("files", m.FilesWritten),
		zap.Int64("bytes", m.TotalBytes),
		zap.Duration("format", m.FormatTime),
		zap.Duration("write", m.WriteTime),
	)
	return nil
}

// newFile creates a jennifer file for the package at importPath with the
// configured header.
func (g *Generator) newFile(importPath string) *jen.File {
	f := jen.NewFilePath(importPath)
	header := g.cfg.Header
	if header == "" {
		header = DefaultHeader
	}
	f.HeaderComment(header)
	return f
}

// plan decides every output file.
func (g *Generator) plan() ([]file, error) {
	model, err := g.planModel()
	if err != nil {
		return nil, err
	}
	services, err := g.planServices()
	if err != nil {
		return nil, err
	}
	return append(model, services...), nil
}

// servicePackage returns the output directory and import path of a
// service. A single service is generated in the root package; several
// services get one sub-package each.
func (g *Generator) servicePackage(svc *shape.Shape) (dir, importPath string) {
	if len(g.model.Services()) <= 1 {
		return "", g.cfg.Package
	}
	dir = fileName(svc.Name())
	return dir, path.Join(g.cfg.Package, dir)
}
