package customize

import (
	"time"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/shapegen/compiler/gen"
	"github.com/syssam/shapegen/shape"
)

// Retry defaults of the standard strategy.
const (
	DefaultMaxAttempts    = 3
	DefaultInitialBackoff = time.Second
	DefaultMaxBackoff     = 20 * time.Second
)

// RetryOption configures a RetryConfigDecorator.
type RetryOption func(*RetryConfigDecorator)

// WithMaxAttempts sets the generated default for the number of attempts,
// the first one included.
func WithMaxAttempts(n int) RetryOption {
	return func(d *RetryConfigDecorator) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithBackoff sets the generated defaults for the exponential backoff.
func WithBackoff(initialBackoff, maxBackoff time.Duration) RetryOption {
	return func(d *RetryConfigDecorator) {
		if initialBackoff > 0 {
			d.initialBackoff = initialBackoff
		}
		if maxBackoff >= d.initialBackoff {
			d.maxBackoff = maxBackoff
		}
	}
}

// RetryConfigDecorator adds a retry configuration to the service config and
// attaches it to every outgoing request. Generated clients fall back to the
// defaults baked in at generation time.
type RetryConfigDecorator struct {
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewRetryConfigDecorator returns the decorator with the standard defaults.
func NewRetryConfigDecorator(opts ...RetryOption) *RetryConfigDecorator {
	d := &RetryConfigDecorator{
		maxAttempts:    DefaultMaxAttempts,
		initialBackoff: DefaultInitialBackoff,
		maxBackoff:     DefaultMaxBackoff,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name implements gen.Decorator.
func (*RetryConfigDecorator) Name() string { return "RetryConfig" }

// Order implements gen.Decorator.
func (*RetryConfigDecorator) Order() int8 { return 10 }

// ConfigCustomizations implements gen.ConfigDecorator.
func (d *RetryConfigDecorator) ConfigCustomizations(ctx *gen.CodegenContext, base []gen.ConfigCustomization) []gen.ConfigCustomization {
	return append(base, &retryConfig{pkg: ctx.RuntimePkg("retry"), defaults: *d})
}

// OperationCustomizations implements gen.OperationDecorator.
func (d *RetryConfigDecorator) OperationCustomizations(ctx *gen.CodegenContext, _ *shape.Shape, base []gen.OperationCustomization) []gen.OperationCustomization {
	return append(base, gen.CustomizationFunc[gen.OperationSection](func(section gen.OperationSection) gen.Writable {
		s, ok := section.(gen.MutateRequest)
		if !ok {
			return nil
		}
		return gen.Emit(
			jen.Qual(ctx.RuntimePkg("retry"), "Attach").Call(
				jen.Id(s.Request).Dot("Properties").Call(),
				jen.Id(s.Config).Dot("retryConfig"),
			),
		)
	}))
}

// ExtraSections implements gen.ExtraSectionsDecorator.
func (*RetryConfigDecorator) ExtraSections(*gen.CodegenContext) []gen.AdHocCustomization {
	return []gen.AdHocCustomization{
		gen.AdHoc(func(s gen.CopySdkConfigToClientConfig) gen.Writable {
			return gen.Emit(
				jen.If(
					jen.Id("rc").Op(":=").Id(s.SdkConfig).Dot("RetryConfig").Call(),
					jen.Id("rc").Op("!=").Nil(),
				).Block(
					jen.Id(s.ServiceConfigBuilder).Dot("WithRetryConfig").Call(jen.Op("*").Id("rc")),
				),
			)
		}),
	}
}

type retryConfig struct {
	pkg      string
	defaults RetryConfigDecorator
}

func (r *retryConfig) Section(section gen.ServiceConfigSection) gen.Writable {
	switch s := section.(type) {
	case gen.ConfigStruct:
		return gen.Emit(jen.Id("retryConfig").Qual(r.pkg, "Config"))
	case gen.ConfigImpl:
		return gen.Emit(
			jen.Comment("RetryConfig returns the retry configuration."),
			jen.Func().Params(jen.Id(s.Receiver).Op("*").Id("Config")).Id("RetryConfig").Params().Qual(r.pkg, "Config").Block(
				jen.Return(jen.Id(s.Receiver).Dot("retryConfig")),
			),
			jen.Line(),
		)
	case gen.BuilderStruct:
		return gen.Emit(jen.Id("retryConfig").Op("*").Qual(r.pkg, "Config"))
	case gen.BuilderImpl:
		return gen.Emit(
			jen.Comment("WithRetryConfig sets the retry configuration for this service."),
			jen.Func().Params(jen.Id(s.Receiver).Op("*").Id("Builder")).Id("WithRetryConfig").Params(
				jen.Id("retryConfig").Qual(r.pkg, "Config"),
			).Op("*").Id("Builder").Block(
				jen.Id(s.Receiver).Dot("retryConfig").Op("=").Op("&").Id("retryConfig"),
				jen.Return(jen.Id(s.Receiver)),
			),
			jen.Line(),
		)
	case gen.BuilderBuild:
		return gen.Emit(
			jen.Id(s.Config).Dot("retryConfig").Op("=").Qual(r.pkg, "Config").Values(jen.Dict{
				jen.Id("MaxAttempts"):    jen.Lit(r.defaults.maxAttempts),
				jen.Id("InitialBackoff"): duration(r.defaults.initialBackoff),
				jen.Id("MaxBackoff"):     duration(r.defaults.maxBackoff),
			}),
			jen.If(jen.Id(s.Builder).Dot("retryConfig").Op("!=").Nil()).Block(
				jen.Id(s.Config).Dot("retryConfig").Op("=").Op("*").Id(s.Builder).Dot("retryConfig"),
			),
		)
	default:
		return nil
	}
}

// duration renders d as a time.Duration expression.
func duration(d time.Duration) *jen.Statement {
	if d%time.Second == 0 {
		return jen.Lit(int64(d / time.Second)).Op("*").Qual("time", "Second")
	}
	return jen.Qual("time", "Duration").Call(jen.Lit(int64(d)))
}

var (
	_ gen.ConfigDecorator        = (*RetryConfigDecorator)(nil)
	_ gen.OperationDecorator     = (*RetryConfigDecorator)(nil)
	_ gen.ExtraSectionsDecorator = (*RetryConfigDecorator)(nil)
)
