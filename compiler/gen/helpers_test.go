package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/shapegen/shape"
)

const testPkg = "example.com/tags/client"

// tagsModel returns a model with a constrained collection reachable from an
// operation input, and an unreachable one.
func tagsModel() *shape.Model {
	return shape.MustNewModel(
		&shape.Shape{ID: "com.example#TagValue", Kind: shape.KindString, Traits: []shape.Trait{
			shape.LengthTrait{Min: shape.Int64(1), Max: shape.Int64(128)},
		}},
		&shape.Shape{ID: "com.example#Tags", Kind: shape.KindList,
			Traits: []shape.Trait{
				shape.DocumentationTrait{Text: "Tags of a resource."},
				shape.LengthTrait{Min: shape.Int64(1), Max: shape.Int64(50)},
				shape.UniqueItemsTrait{},
			},
			Members: []*shape.Member{{Name: "member", Target: "com.example#TagValue"}},
		},
		&shape.Shape{ID: "com.example#Labels", Kind: shape.KindList,
			Traits:  []shape.Trait{shape.LengthTrait{Max: shape.Int64(10)}},
			Members: []*shape.Member{{Name: "member", Target: "com.example#Name"}},
		},
		&shape.Shape{ID: "com.example#Name", Kind: shape.KindString},
		&shape.Shape{ID: "com.example#PutTagsInput", Kind: shape.KindStructure, Members: []*shape.Member{
			{Name: "resourceArn", Target: "com.example#Name", Traits: []shape.Trait{shape.RequiredTrait{}}},
			{Name: "tags", Target: "com.example#Tags"},
		}},
		&shape.Shape{ID: "com.example#PutTags", Kind: shape.KindOperation, Input: "com.example#PutTagsInput"},
		&shape.Shape{ID: "com.example#ListTags", Kind: shape.KindOperation},
		&shape.Shape{ID: "com.example#TagService", Kind: shape.KindService, Operations: []shape.ShapeID{
			"com.example#PutTags", "com.example#ListTags",
		}},
	)
}

func mustShape(m *shape.Model, id shape.ShapeID) *shape.Shape {
	s, ok := m.Shape(id)
	if !ok {
		panic(fmt.Sprintf("missing shape %s", id))
	}
	return s
}

// render returns the Go source of the code added to a fresh file of the
// model package.
func render(add func(f *jen.File)) string {
	f := jen.NewFilePath(testPkg + "/model")
	add(f)
	return fmt.Sprintf("%#v", f)
}

// recordingDecorator contributes one named customization per surface.
type recordingDecorator struct {
	name  string
	order int8
}

func (d *recordingDecorator) Name() string { return d.name }
func (d *recordingDecorator) Order() int8  { return d.order }

func (d *recordingDecorator) ConfigCustomizations(_ *CodegenContext, base []ConfigCustomization) []ConfigCustomization {
	return append(base, namedConfig(d.name))
}

func (d *recordingDecorator) OperationCustomizations(_ *CodegenContext, _ *shape.Shape, base []OperationCustomization) []OperationCustomization {
	return append(base, namedOperation(d.name))
}

func (d *recordingDecorator) ExtraSections(*CodegenContext) []AdHocCustomization {
	return []AdHocCustomization{
		AdHoc(func(s CopySdkConfigToClientConfig) Writable {
			return Emit(jen.Comment(d.name + ":" + s.ServiceConfigBuilder))
		}),
	}
}

// namedConfig contributes a comment naming itself to BuilderBuild only.
type namedConfig string

func (n namedConfig) Section(section ServiceConfigSection) Writable {
	switch section.(type) {
	case BuilderBuild:
		return Emit(jen.Comment(string(n)))
	default:
		return nil
	}
}

// namedOperation contributes a comment naming itself to MutateRequest only.
type namedOperation string

func (n namedOperation) Section(section OperationSection) Writable {
	switch s := section.(type) {
	case MutateRequest:
		return Emit(jen.Comment(string(n) + ":" + s.Request))
	default:
		return nil
	}
}

// configNames returns the names of namedConfig customizations in order.
func configNames(cs []ConfigCustomization) []string {
	var names []string
	for _, c := range cs {
		if n, ok := c.(namedConfig); ok {
			names = append(names, string(n))
		}
	}
	return names
}

func operationNames(cs []OperationCustomization) []string {
	var names []string
	for _, c := range cs {
		if n, ok := c.(namedOperation); ok {
			names = append(names, string(n))
		}
	}
	return names
}
