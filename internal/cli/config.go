package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/syssam/shapegen/compiler/gen"
	"github.com/syssam/shapegen/compiler/gen/customize"
)

const (
	maxWalkDepth = 25

	// EnvPrefix prefixes the environment variables read by the CLI.
	EnvPrefix = "SHAPEGEN"
)

// configNames are the file names looked up by auto-discovery, in order.
var configNames = []string{"shapegen.yaml", "shapegen.yml"}

// Config represents the shapegen configuration from shapegen.yaml.
type Config struct {
	// Model is the path of the shape-graph snapshot.
	Model string `mapstructure:"model" yaml:"model"`

	// Output settings.
	Target  string `mapstructure:"target" yaml:"target"`
	Package string `mapstructure:"package" yaml:"package"`
	Header  string `mapstructure:"header" yaml:"header,omitempty"`

	PublicConstrainedTypes bool   `mapstructure:"public_constrained_types" yaml:"public_constrained_types"`
	RuntimePackage         string `mapstructure:"runtime_package" yaml:"runtime_package"`
	Workers                int    `mapstructure:"workers" yaml:"workers"`

	// Decorators lists the enabled features by name. Empty enables the
	// default features.
	Decorators []string `mapstructure:"decorators" yaml:"decorators"`

	Retry RetryConfig `mapstructure:"retry" yaml:"retry"`
}

// RetryConfig holds the defaults baked into generated retry configs.
type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff" yaml:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff" yaml:"max_backoff"`
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"target":                   "target",
	"package":                  "package",
	"header":                   "header",
	"public-constrained-types": "public_constrained_types",
	"runtime-package":          "runtime_package",
	"workers":                  "workers",
	"decorators":               "decorators",
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Only flags of fs that were set on the command line override the other
// sources. It returns the loaded config and the path to the config file
// (empty if none found).
func LoadConfig(explicitConfigPath string, fs *pflag.FlagSet) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, configPath, fmt.Errorf("binding flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", "")
	v.SetDefault("target", "")
	v.SetDefault("package", "")
	v.SetDefault("header", "")
	v.SetDefault("public_constrained_types", false)
	v.SetDefault("runtime_package", gen.DefaultRuntimePackage)
	v.SetDefault("workers", 0)
	v.SetDefault("decorators", []string{})

	v.SetDefault("retry.max_attempts", customize.DefaultMaxAttempts)
	v.SetDefault("retry.initial_backoff", customize.DefaultInitialBackoff)
	v.SetDefault("retry.max_backoff", customize.DefaultMaxBackoff)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for shapegen.yaml or shapegen.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}
	for range maxWalkDepth {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

// Options returns the generator options described by the config.
func (c *Config) Options() ([]gen.Option, error) {
	decorators, err := c.decorators()
	if err != nil {
		return nil, err
	}
	opts := []gen.Option{
		gen.WithPackage(c.Package),
		gen.WithTarget(c.Target),
		gen.WithPublicConstrainedTypes(c.PublicConstrainedTypes),
		gen.WithDecorators(decorators...),
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.RuntimePackage != "" {
		opts = append(opts, gen.WithRuntimePackage(c.RuntimePackage))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	return opts, nil
}

// decorators resolves the enabled features. The retry decorator is built
// with the configured defaults.
func (c *Config) decorators() ([]gen.Decorator, error) {
	ds, err := customize.Decorators(c.Decorators...)
	if err != nil {
		return nil, err
	}
	for i, d := range ds {
		if _, ok := d.(*customize.RetryConfigDecorator); ok {
			ds[i] = customize.NewRetryConfigDecorator(
				customize.WithMaxAttempts(c.Retry.MaxAttempts),
				customize.WithBackoff(c.Retry.InitialBackoff, c.Retry.MaxBackoff),
			)
		}
	}
	return ds, nil
}

// ResolvedModel returns the effective model path, with the command-line
// argument taking precedence over the config.
func (c *Config) ResolvedModel(arg string) string {
	if arg != "" {
		return arg
	}
	return c.Model
}
