package customize

import (
	"context"
	"fmt"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/syssam/shapegen/compiler/gen"
	"github.com/syssam/shapegen/shape"
)

const testPkg = "example.com/tags/client"

func testModel() *shape.Model {
	return shape.MustNewModel(
		&shape.Shape{ID: "com.example#PutTagsInput", Kind: shape.KindStructure, Members: []*shape.Member{
			{Name: "resourceArn", Target: "com.example#Name"},
		}},
		&shape.Shape{ID: "com.example#Name", Kind: shape.KindString},
		&shape.Shape{ID: "com.example#PutTags", Kind: shape.KindOperation, Input: "com.example#PutTagsInput"},
		&shape.Shape{ID: "com.example#TagService", Kind: shape.KindService, Operations: []shape.ShapeID{"com.example#PutTags"}},
	)
}

func testContext(t *testing.T) *gen.CodegenContext {
	t.Helper()
	cfg, err := gen.NewConfig(gen.WithPackage(testPkg), gen.WithTarget(t.TempDir()))
	require.NoError(t, err)
	m := testModel()
	svc, ok := m.Shape("com.example#TagService")
	require.True(t, ok)
	return &gen.CodegenContext{Config: cfg, Model: m, Service: svc}
}

// generate renders the client of testModel with the given options.
func generate(t *testing.T, opts ...gen.Option) map[string]string {
	t.Helper()
	cfg, err := gen.NewConfig(append([]gen.Option{
		gen.WithPackage(testPkg),
		gen.WithTarget(t.TempDir()),
	}, opts...)...)
	require.NoError(t, err)
	g, err := gen.NewGenerator(cfg, testModel())
	require.NoError(t, err)
	files, err := g.GenerateFiles(context.Background())
	require.NoError(t, err)
	out := make(map[string]string, len(files))
	for rel, b := range files {
		out[rel] = string(b)
	}
	return out
}

// marker is a base customization that renders a comment in every section.
type marker string

func (m marker) Section(gen.ServiceConfigSection) gen.Writable {
	return gen.Emit(jen.Comment(string(m)))
}

type opMarker string

func (m opMarker) Section(gen.OperationSection) gen.Writable {
	return gen.Emit(jen.Comment(string(m)))
}

func renderCode(c jen.Code) string {
	return fmt.Sprintf("%#v", c)
}
