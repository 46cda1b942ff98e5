package gen

import (
	"path"
	"runtime"

	"go.uber.org/zap"
)

// DefaultRuntimePackage is the import path of the runtime support module
// that generated clients link against.
const DefaultRuntimePackage = "github.com/syssam/shapegen-runtime"

// Config holds the settings of one generation run.
type Config struct {
	// Package is the import path of the generated root package,
	// e.g. "example.com/tags/client". Constrained types go to Package/model.
	Package string

	// Target is the output directory.
	Target string

	// Header is written at the top of every generated file.
	Header string

	// PublicConstrainedTypes exports every synthesized constraint-violation
	// type. When false, the types are unexported in the model package.
	PublicConstrainedTypes bool

	// RuntimePackage is the import path of the runtime support module.
	RuntimePackage string

	// Workers bounds the number of files rendered in parallel.
	Workers int

	// Decorators contribute customizations to the generated sections.
	Decorators []Decorator

	// Logger receives generation progress. Defaults to a no-op logger.
	Logger *zap.Logger
}

// OutputConfig groups the output settings.
type OutputConfig struct {
	Target  string
	Package string
	Header  string
}

// Output returns the grouped output settings.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Target:  c.Target,
		Package: c.Package,
		Header:  c.Header,
	}
}

// ModelPackage returns the import path of the generated model package.
func (c *Config) ModelPackage() string {
	return path.Join(c.Package, "model")
}

// RuntimePkg returns the import path of a runtime sub-package.
func (c *Config) RuntimePkg(sub string) string {
	base := c.RuntimePackage
	if base == "" {
		base = DefaultRuntimePackage
	}
	return path.Join(base, sub)
}

// workers returns the effective worker count.
func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// logger returns the configured logger or a no-op logger.
func (c *Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// validate checks the settings required by Generate.
func (c *Config) validate() error {
	if c.Package == "" {
		return NewConfigError("Package", nil, "missing package import path")
	}
	if c.Target == "" {
		return NewConfigError("Target", nil, "missing target directory")
	}
	return nil
}
