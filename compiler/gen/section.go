package gen

import "github.com/dave/jennifer/jen"

// Section names a place in generated code where customizations may
// contribute fragments. The set of sections is closed: every implementation
// lives in this file.
type Section interface {
	// SectionName returns a stable name for logs and ad-hoc event keys.
	SectionName() string
	section()
}

// Writable adds a fragment to a group. A nil Writable is the explicit empty
// contribution.
type Writable func(g *jen.Group)

// IsEmpty reports whether w contributes nothing.
func (w Writable) IsEmpty() bool { return w == nil }

// Render adds the fragment to g. Empty writables are skipped.
func (w Writable) Render(g *jen.Group) {
	if w != nil {
		w(g)
	}
}

// Emit returns a Writable adding the given statements.
func Emit(code ...jen.Code) Writable {
	return func(g *jen.Group) {
		for _, c := range code {
			g.Add(c)
		}
	}
}

// -----------------------------------------------------------------------------
// Service configuration

// ServiceConfigSection is a section of the generated service Config and its
// Builder.
type ServiceConfigSection interface {
	Section
	serviceConfigSection()
}

type (
	// ConfigStruct is the field list of the Config struct.
	ConfigStruct struct{}

	// ConfigImpl is the method set of Config. Receiver is the receiver
	// binding used by the generated methods.
	ConfigImpl struct {
		Receiver string
	}

	// BuilderStruct is the field list of the Builder struct.
	BuilderStruct struct{}

	// BuilderImpl is the method set of Builder.
	BuilderImpl struct {
		Receiver string
	}

	// BuilderBuild is the body of Builder.Build, after the Config value named
	// Config has been allocated from the builder named Builder.
	BuilderBuild struct {
		Builder string
		Config  string
	}
)

func (ConfigStruct) SectionName() string  { return "ConfigStruct" }
func (ConfigImpl) SectionName() string    { return "ConfigImpl" }
func (BuilderStruct) SectionName() string { return "BuilderStruct" }
func (BuilderImpl) SectionName() string   { return "BuilderImpl" }
func (BuilderBuild) SectionName() string  { return "BuilderBuild" }

func (ConfigStruct) section()  {}
func (ConfigImpl) section()    {}
func (BuilderStruct) section() {}
func (BuilderImpl) section()   {}
func (BuilderBuild) section()  {}

func (ConfigStruct) serviceConfigSection()  {}
func (ConfigImpl) serviceConfigSection()    {}
func (BuilderStruct) serviceConfigSection() {}
func (BuilderImpl) serviceConfigSection()   {}
func (BuilderBuild) serviceConfigSection()  {}

// -----------------------------------------------------------------------------
// Operations

// OperationSection is a section of the per-operation request pipeline.
type OperationSection interface {
	Section
	operationSection()
}

type (
	// MutateInput runs before the input is serialized. Input names the
	// operation input and Config the service config.
	MutateInput struct {
		Input  string
		Config string
	}

	// MutateRequest runs on the outgoing request before it is sent.
	MutateRequest struct {
		Request string
		Config  string
	}
)

func (MutateInput) SectionName() string   { return "MutateInput" }
func (MutateRequest) SectionName() string { return "MutateRequest" }

func (MutateInput) section()   {}
func (MutateRequest) section() {}

func (MutateInput) operationSection()   {}
func (MutateRequest) operationSection() {}

// -----------------------------------------------------------------------------
// Ad-hoc

// AdHocSection is a cross-cutting event outside the config and operation
// surfaces.
type AdHocSection interface {
	Section
	adHocSection()
}

// CopySdkConfigToClientConfig runs while the shared SDK config named
// SdkConfig is copied into the service config builder named
// ServiceConfigBuilder.
type CopySdkConfigToClientConfig struct {
	SdkConfig            string
	ServiceConfigBuilder string
}

func (CopySdkConfigToClientConfig) SectionName() string { return "CopySdkConfigToClientConfig" }
func (CopySdkConfigToClientConfig) section()            {}
func (CopySdkConfigToClientConfig) adHocSection()       {}

var (
	_ ServiceConfigSection = ConfigStruct{}
	_ ServiceConfigSection = ConfigImpl{}
	_ ServiceConfigSection = BuilderStruct{}
	_ ServiceConfigSection = BuilderImpl{}
	_ ServiceConfigSection = BuilderBuild{}
	_ OperationSection     = MutateInput{}
	_ OperationSection     = MutateRequest{}
	_ AdHocSection         = CopySdkConfigToClientConfig{}
)
