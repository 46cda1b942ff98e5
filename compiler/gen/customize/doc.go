// Package customize provides the built-in decorators of the generator and
// the feature table used to enable them by name.
//
//	cfg, err := gen.NewConfig(
//	    gen.WithPackage("example.com/tags/client"),
//	    gen.WithTarget("./client"),
//	    customize.WithFeatures("credentials-cache", "retry"),
//	)
package customize
