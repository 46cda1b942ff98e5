package customize

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/shapegen/compiler/gen"
	"github.com/syssam/shapegen/shape"
)

// CredentialsCacheDecorator adds a credentials cache to the service config,
// copies it into the properties of every outgoing request, and seeds it from
// the shared SDK config.
type CredentialsCacheDecorator struct{}

// NewCredentialsCacheDecorator returns the decorator.
func NewCredentialsCacheDecorator() *CredentialsCacheDecorator {
	return &CredentialsCacheDecorator{}
}

// Name implements gen.Decorator.
func (*CredentialsCacheDecorator) Name() string { return "CredentialsCache" }

// Order implements gen.Decorator.
func (*CredentialsCacheDecorator) Order() int8 { return 0 }

// ConfigCustomizations implements gen.ConfigDecorator.
func (*CredentialsCacheDecorator) ConfigCustomizations(ctx *gen.CodegenContext, base []gen.ConfigCustomization) []gen.ConfigCustomization {
	return append(base, &CredentialsCacheConfig{cachePkg: ctx.RuntimePkg("auth/cache")})
}

// OperationCustomizations implements gen.OperationDecorator.
func (*CredentialsCacheDecorator) OperationCustomizations(ctx *gen.CodegenContext, _ *shape.Shape, base []gen.OperationCustomization) []gen.OperationCustomization {
	return append(base, &CredentialsCacheFeature{authPkg: ctx.RuntimePkg("auth")})
}

// ExtraSections implements gen.ExtraSectionsDecorator.
func (*CredentialsCacheDecorator) ExtraSections(*gen.CodegenContext) []gen.AdHocCustomization {
	return []gen.AdHocCustomization{
		gen.AdHoc(func(s gen.CopySdkConfigToClientConfig) gen.Writable {
			return gen.Emit(
				jen.Id(s.ServiceConfigBuilder).Dot("SetCredentialsCache").Call(
					jen.Id(s.SdkConfig).Dot("CredentialsCache").Call(),
				),
			)
		}),
	}
}

// CredentialsCacheConfig adds the credentials cache field, its accessor and
// the builder setter pair.
type CredentialsCacheConfig struct {
	cachePkg string
}

// Section implements gen.ConfigCustomization.
func (c *CredentialsCacheConfig) Section(section gen.ServiceConfigSection) gen.Writable {
	switch s := section.(type) {
	case gen.ConfigStruct:
		return gen.Emit(jen.Id("credentialsCache").Qual(c.cachePkg, "SharedCredentialsCache"))
	case gen.ConfigImpl:
		return gen.Emit(
			jen.Comment("CredentialsCache returns the credentials cache."),
			jen.Func().Params(jen.Id(s.Receiver).Op("*").Id("Config")).Id("CredentialsCache").Params().Qual(c.cachePkg, "SharedCredentialsCache").Block(
				jen.Return(jen.Id(s.Receiver).Dot("credentialsCache")),
			),
			jen.Line(),
		)
	case gen.BuilderStruct:
		return gen.Emit(jen.Id("credentialsCache").Op("*").Qual(c.cachePkg, "CredentialsCache"))
	case gen.BuilderImpl:
		return gen.Emit(
			jen.Comment("WithCredentialsCache sets the credentials cache for this service."),
			jen.Func().Params(jen.Id(s.Receiver).Op("*").Id("Builder")).Id("WithCredentialsCache").Params(
				jen.Id("credentialsCache").Qual(c.cachePkg, "CredentialsCache"),
			).Op("*").Id("Builder").Block(
				jen.Return(jen.Id(s.Receiver).Dot("SetCredentialsCache").Call(jen.Op("&").Id("credentialsCache"))),
			),
			jen.Line(),
			jen.Comment("SetCredentialsCache sets the credentials cache for this service. A nil cache"),
			jen.Comment("unsets it."),
			jen.Func().Params(jen.Id(s.Receiver).Op("*").Id("Builder")).Id("SetCredentialsCache").Params(
				jen.Id("credentialsCache").Op("*").Qual(c.cachePkg, "CredentialsCache"),
			).Op("*").Id("Builder").Block(
				jen.Id(s.Receiver).Dot("credentialsCache").Op("=").Id("credentialsCache"),
				jen.Return(jen.Id(s.Receiver)),
			),
			jen.Line(),
		)
	case gen.BuilderBuild:
		return gen.Emit(
			jen.Id(s.Config).Dot("credentialsCache").Op("=").Qual(c.cachePkg, "NewShared").Call(jen.Id(s.Builder).Dot("credentialsCache")),
		)
	default:
		return nil
	}
}

// CredentialsCacheFeature copies the cached credentials into the properties
// of the outgoing request.
type CredentialsCacheFeature struct {
	authPkg string
}

// Section implements gen.OperationCustomization.
func (f *CredentialsCacheFeature) Section(section gen.OperationSection) gen.Writable {
	switch s := section.(type) {
	case gen.MutateRequest:
		return gen.Emit(
			jen.Qual(f.authPkg, "SetCredentialsCache").Call(
				jen.Id(s.Request).Dot("Properties").Call(),
				jen.Id(s.Config).Dot("credentialsCache"),
			),
		)
	default:
		return nil
	}
}

var (
	_ gen.ConfigDecorator        = (*CredentialsCacheDecorator)(nil)
	_ gen.OperationDecorator     = (*CredentialsCacheDecorator)(nil)
	_ gen.ExtraSectionsDecorator = (*CredentialsCacheDecorator)(nil)
)
