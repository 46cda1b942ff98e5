package customize

import (
	"fmt"
	"strings"

	"github.com/syssam/shapegen/compiler/gen"
)

var (
	// FeatureCredentialsCache provides a feature-flag for the credentials cache decorator.
	FeatureCredentialsCache = Feature{
		Name:        "credentials-cache",
		Stage:       Stable,
		Default:     true,
		Description: "CredentialsCache adds a credentials cache to the service config and every request",
		decorator:   func() gen.Decorator { return NewCredentialsCacheDecorator() },
	}

	// FeatureRetry provides a feature-flag for the retry configuration decorator.
	FeatureRetry = Feature{
		Name:        "retry",
		Stage:       Beta,
		Default:     true,
		Description: "Retry adds a retry configuration with the standard strategy defaults",
		decorator:   func() gen.Decorator { return NewRetryConfigDecorator() },
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureCredentialsCache,
		FeatureRetry,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or go away.
	Experimental

	// Alpha features are complete but their generated API may still change.
	Alpha

	// Beta features are documented and no breaking changes are expected.
	Beta

	// Stable features are Beta features that have been in use for a while.
	Stable
)

// String returns the lower-case stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return fmt.Sprintf("FeatureStage(%d)", int(s))
	}
}

// A Feature is a named decorator that can be enabled from configuration.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default indicates if this feature is enabled when no feature list is given.
	Default bool

	// A Description of this feature.
	Description string

	decorator func() gen.Decorator
}

// Decorator returns a new decorator for the feature.
func (f Feature) Decorator() gen.Decorator {
	return f.decorator()
}

// FeatureByName returns the feature with the given name. Names are matched
// case-insensitively.
func FeatureByName(name string) (Feature, error) {
	for _, f := range AllFeatures {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return Feature{}, gen.NewConfigError("Decorators", name, "unknown feature")
}

// DefaultFeatures returns the features enabled by default.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}

// Decorators resolves feature names into decorators, in the given order.
// An empty list selects the default features. Duplicates are ignored.
func Decorators(names ...string) ([]gen.Decorator, error) {
	features := DefaultFeatures()
	if len(names) > 0 {
		features = features[:0:0]
		seen := make(map[string]bool, len(names))
		for _, name := range names {
			f, err := FeatureByName(name)
			if err != nil {
				return nil, err
			}
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			features = append(features, f)
		}
	}
	ds := make([]gen.Decorator, len(features))
	for i, f := range features {
		ds[i] = f.Decorator()
	}
	return ds, nil
}

// WithFeatures returns a gen.Option registering the decorators of the named
// features.
func WithFeatures(names ...string) gen.Option {
	return func(c *gen.Config) error {
		ds, err := Decorators(names...)
		if err != nil {
			return err
		}
		return gen.WithDecorators(ds...)(c)
	}
}
