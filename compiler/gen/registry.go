package gen

import (
	"cmp"
	"slices"

	"github.com/syssam/shapegen/shape"
)

// Registry holds the decorators of a generation run, sorted once at
// construction. It holds no other state and can be shared by workers.
type Registry struct {
	decorators []Decorator
}

// NewRegistry returns a registry with the given decorators sorted by Order.
// Ties keep registration order. Nil decorators are ignored.
func NewRegistry(decorators ...Decorator) *Registry {
	sorted := make([]Decorator, 0, len(decorators))
	for _, d := range decorators {
		if d != nil {
			sorted = append(sorted, d)
		}
	}
	slices.SortStableFunc(sorted, func(a, b Decorator) int {
		return cmp.Compare(a.Order(), b.Order())
	})
	return &Registry{decorators: sorted}
}

// Decorators returns the decorators in application order.
func (r *Registry) Decorators() []Decorator {
	return slices.Clone(r.decorators)
}

// Names returns the decorator names in application order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.decorators))
	for i, d := range r.decorators {
		names[i] = d.Name()
	}
	return names
}

// ConfigCustomizations folds every ConfigDecorator over base.
func (r *Registry) ConfigCustomizations(ctx *CodegenContext, base []ConfigCustomization) []ConfigCustomization {
	list := fresh(base)
	for _, d := range r.decorators {
		if cd, ok := d.(ConfigDecorator); ok {
			list = slices.Clip(cd.ConfigCustomizations(ctx, list))
		}
	}
	return list
}

// OperationCustomizations folds every OperationDecorator over base for op.
func (r *Registry) OperationCustomizations(ctx *CodegenContext, op *shape.Shape, base []OperationCustomization) []OperationCustomization {
	list := fresh(base)
	for _, d := range r.decorators {
		if od, ok := d.(OperationDecorator); ok {
			list = slices.Clip(od.OperationCustomizations(ctx, op, list))
		}
	}
	return list
}

// ExtraSections concatenates the ad-hoc customizations of every
// ExtraSectionsDecorator in application order.
func (r *Registry) ExtraSections(ctx *CodegenContext) []AdHocCustomization {
	var list []AdHocCustomization
	for _, d := range r.decorators {
		if ed, ok := d.(ExtraSectionsDecorator); ok {
			list = append(list, ed.ExtraSections(ctx)...)
		}
	}
	return list
}

// Composition is the result of composing every surface for one operation.
type Composition struct {
	Config    []ConfigCustomization
	Operation []OperationCustomization
	AdHoc     []AdHocCustomization
}

// Compose runs the three folds for op.
func (r *Registry) Compose(ctx *CodegenContext, op *shape.Shape, baseConfig []ConfigCustomization, baseOperation []OperationCustomization) Composition {
	return Composition{
		Config:    r.ConfigCustomizations(ctx, baseConfig),
		Operation: r.OperationCustomizations(ctx, op, baseOperation),
		AdHoc:     r.ExtraSections(ctx),
	}
}

// fresh copies base into a slice with no spare capacity, so that a
// decorator appending to it never writes into the caller's array.
func fresh[T any](base []T) []T {
	return slices.Clip(slices.Clone(base))
}
