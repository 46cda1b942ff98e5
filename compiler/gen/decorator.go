package gen

import (
	"path"

	"github.com/syssam/shapegen/shape"
)

// CodegenContext is the read-only state handed to decorators.
type CodegenContext struct {
	Config  *Config
	Model   *shape.Model
	Service *shape.Shape
}

// RuntimePkg returns the import path of a runtime sub-package.
func (c *CodegenContext) RuntimePkg(sub string) string {
	return c.Config.RuntimePkg(sub)
}

// ServicePackage returns the import path of the generated root package.
func (c *CodegenContext) ServicePackage() string {
	return c.Config.Package
}

// ServiceName returns the package name of the generated root package.
func (c *CodegenContext) ServiceName() string {
	return path.Base(c.Config.Package)
}

// A Decorator contributes customizations to one or more surfaces. It must
// also implement at least one of ConfigDecorator, OperationDecorator and
// ExtraSectionsDecorator to have any effect.
//
// Decorators run in ascending Order; decorators with the same order run in
// registration order. A decorator receives the customizations accumulated so
// far and must return them unchanged and in place, optionally followed by
// its own.
type Decorator interface {
	Name() string
	Order() int8
}

// ConfigDecorator contributes to the service config surface.
type ConfigDecorator interface {
	Decorator
	ConfigCustomizations(ctx *CodegenContext, base []ConfigCustomization) []ConfigCustomization
}

// OperationDecorator contributes to the request pipeline of operations.
type OperationDecorator interface {
	Decorator
	OperationCustomizations(ctx *CodegenContext, op *shape.Shape, base []OperationCustomization) []OperationCustomization
}

// ExtraSectionsDecorator contributes ad-hoc customizations.
type ExtraSectionsDecorator interface {
	Decorator
	ExtraSections(ctx *CodegenContext) []AdHocCustomization
}
