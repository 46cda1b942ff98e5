package gen

import (
	"errors"

	"go.uber.org/zap"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/client".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPublicConstrainedTypes controls whether synthesized constraint-violation
// types are exported. The setting applies uniformly to the whole run.
func WithPublicConstrainedTypes(public bool) Option {
	return func(c *Config) error {
		c.PublicConstrainedTypes = public
		return nil
	}
}

// WithRuntimePackage sets the import path of the runtime support module.
func WithRuntimePackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("RuntimePackage", nil, "runtime package cannot be empty")
		}
		c.RuntimePackage = pkg
		return nil
	}
}

// WithWorkers sets the number of files rendered in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithDecorators appends decorators in registration order.
func WithDecorators(decorators ...Decorator) Option {
	return func(c *Config) error {
		for _, d := range decorators {
			if d == nil {
				return NewConfigError("Decorators", nil, "decorator cannot be nil")
			}
		}
		c.Decorators = append(c.Decorators, decorators...)
		return nil
	}
}

// WithLogger sets the logger used during generation.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
