package gen

import (
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/shapegen/shape"
)

// Bindings used by the generated service code and handed to sections.
const (
	configReceiver  = "c"
	builderReceiver = "b"
	builderVar      = "builder"
	configVar       = "config"
	sdkConfigVar    = "sdkConfig"
	inputVar        = "input"
	requestVar      = "request"
)

// planServices plans the config, shared config and request files of every
// service.
func (g *Generator) planServices() ([]file, error) {
	var files []file
	for _, svc := range g.model.Services() {
		ops, err := g.model.Operations(svc)
		if err != nil {
			return nil, NewGenerationError("plan", "", "", err)
		}
		dir, pkg := g.servicePackage(svc)
		ctx := &CodegenContext{Config: g.cfg, Model: g.model, Service: svc}
		configs := g.registry.ConfigCustomizations(ctx, baseConfigCustomizations())
		adhoc := g.registry.ExtraSections(ctx)

		files = append(files,
			file{
				rel: path.Join(dir, "config.go"),
				render: func() (*jen.File, error) {
					return g.renderConfig(pkg, svc, configs), nil
				},
			},
			file{
				rel: path.Join(dir, "sdk_config.go"),
				render: func() (*jen.File, error) {
					return g.renderSdkConfig(pkg, adhoc), nil
				},
			},
		)
		for _, op := range ops {
			customizations := g.registry.OperationCustomizations(ctx, op, nil)
			files = append(files, file{
				rel: path.Join(dir, fileName(op.Name())+"_request.go"),
				render: func() (*jen.File, error) {
					return g.renderRequest(pkg, op, customizations)
				},
			})
		}
	}
	return files, nil
}

// renderConfig renders Config, Builder and every config section.
func (g *Generator) renderConfig(pkg string, svc *shape.Shape, cs []ConfigCustomization) *jen.File {
	f := g.newFile(pkg)

	f.Commentf("Config is the configuration of the %s client.", svc.Name())
	f.Type().Id("Config").StructFunc(func(grp *jen.Group) {
		RenderConfigSection(grp, cs, ConfigStruct{})
	})
	f.Line()
	RenderConfigSection(f.Group, cs, ConfigImpl{Receiver: configReceiver})

	f.Comment("Builder builds a Config.")
	f.Type().Id("Builder").StructFunc(func(grp *jen.Group) {
		RenderConfigSection(grp, cs, BuilderStruct{})
	})
	f.Line()
	f.Comment("NewBuilder returns an empty Builder.")
	f.Func().Id("NewBuilder").Params().Op("*").Id("Builder").Block(
		jen.Return(jen.Op("&").Id("Builder").Values()),
	)
	f.Line()
	RenderConfigSection(f.Group, cs, BuilderImpl{Receiver: builderReceiver})

	f.Comment("Build returns the Config described by the builder.")
	f.Func().Params(jen.Id(builderReceiver).Op("*").Id("Builder")).Id("Build").Params().Op("*").Id("Config").BlockFunc(func(grp *jen.Group) {
		grp.Id(configVar).Op(":=").Op("&").Id("Config").Values()
		RenderConfigSection(grp, cs, BuilderBuild{Builder: builderReceiver, Config: configVar})
		grp.Return(jen.Id(configVar))
	})
	return f
}

// renderSdkConfig renders FromSharedConfig with the ad-hoc sections.
func (g *Generator) renderSdkConfig(pkg string, adhoc []AdHocCustomization) *jen.File {
	f := g.newFile(pkg)
	f.Comment("FromSharedConfig returns a Builder seeded from the shared SDK config.")
	f.Func().Id("FromSharedConfig").Params(
		jen.Id(sdkConfigVar).Op("*").Qual(g.cfg.RuntimePkg("config"), "SdkConfig"),
	).Op("*").Id("Builder").BlockFunc(func(grp *jen.Group) {
		grp.Id(builderVar).Op(":=").Id("NewBuilder").Call()
		RenderAdHoc(grp, adhoc, CopySdkConfigToClientConfig{SdkConfig: sdkConfigVar, ServiceConfigBuilder: builderVar})
		grp.Return(jen.Id(builderVar))
	})
	return f
}

// renderRequest renders the function preparing the request of op.
func (g *Generator) renderRequest(pkg string, op *shape.Shape, cs []OperationCustomization) (*jen.File, error) {
	f := g.newFile(pkg)
	name := "prepare" + exportName(op.Name()) + "Request"

	params := []jen.Code{jen.Id(configVar).Op("*").Id("Config")}
	if op.Input != "" {
		input, err := g.model.Expect(op.Input)
		if err != nil {
			return nil, &ResolutionError{Shape: op.ID, Cause: err}
		}
		sym, err := g.values.ToSymbol(input)
		if err != nil {
			return nil, err
		}
		params = append(params, jen.Id(inputVar).Op("*").Add(sym.Code()))
	}
	params = append(params, jen.Id(requestVar).Op("*").Qual(g.cfg.RuntimePkg("transport"), "Request"))

	f.Commentf("%s applies the customizations of %s to the outgoing request.", name, op.Name())
	f.Func().Id(name).Params(params...).Error().BlockFunc(func(grp *jen.Group) {
		if op.Input != "" {
			RenderOperationSection(grp, cs, MutateInput{Input: inputVar, Config: configVar})
		}
		RenderOperationSection(grp, cs, MutateRequest{Request: requestVar, Config: configVar})
		grp.Return(jen.Nil())
	})
	return f, nil
}

// baseConfigCustomizations are rendered before any decorator output.
func baseConfigCustomizations() []ConfigCustomization {
	return []ConfigCustomization{endpointConfig{}}
}

// endpointConfig adds the endpoint every client needs.
type endpointConfig struct{}

func (endpointConfig) Section(section ServiceConfigSection) Writable {
	switch s := section.(type) {
	case ConfigStruct, BuilderStruct:
		return Emit(jen.Id("endpoint").String())
	case ConfigImpl:
		return Emit(
			jen.Comment("Endpoint returns the endpoint requests are sent to."),
			jen.Func().Params(jen.Id(s.Receiver).Op("*").Id("Config")).Id("Endpoint").Params().String().Block(
				jen.Return(jen.Id(s.Receiver).Dot("endpoint")),
			),
			jen.Line(),
		)
	case BuilderImpl:
		return Emit(
			jen.Comment("WithEndpoint sets the endpoint requests are sent to."),
			jen.Func().Params(jen.Id(s.Receiver).Op("*").Id("Builder")).Id("WithEndpoint").Params(jen.Id("endpoint").String()).Op("*").Id("Builder").Block(
				jen.Id(s.Receiver).Dot("endpoint").Op("=").Id("endpoint"),
				jen.Return(jen.Id(s.Receiver)),
			),
			jen.Line(),
		)
	case BuilderBuild:
		return Emit(jen.Id(s.Config).Dot("endpoint").Op("=").Id(s.Builder).Dot("endpoint"))
	default:
		return nil
	}
}
