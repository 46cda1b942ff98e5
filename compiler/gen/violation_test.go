package gen

import (
	"errors"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/shapegen/shape"
)

// tagsInput builds the synthesizer input for the Tags collection.
func tagsInput(t *testing.T, public, reachable bool) CollectionViolationInput {
	t.Helper()
	m := tagsModel()
	tags := mustShape(m, "com.example#Tags")
	member := mustShape(m, "com.example#TagValue")
	infos, err := CollectionTraitInfos(tags, Builtin("string"))
	require.NoError(t, err)
	return CollectionViolationInput{
		Shape:                  tags,
		Member:                 member,
		TraitInfos:             infos,
		Symbols:                NewConstraintViolationSymbolProvider(testPkg + "/model"),
		PublicConstrainedTypes: public,
		IsMemberConstrained:    m.CanReachConstrainedShape(member),
		IsInputReachable:       reachable,
	}
}

func TestSynthesizeCollectionViolation(t *testing.T) {
	t.Run("tags with constrained member", func(t *testing.T) {
		vt, cb, err := SynthesizeCollectionViolation(tagsInput(t, true, true))
		require.NoError(t, err)

		if diff := cmp.Diff([]string{"Length", "UniqueItems", MemberVariant}, vt.VariantNames()); diff != "" {
			t.Errorf("variants mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "TagsConstraintViolation", vt.Symbol.Name)
		require.NotNil(t, vt.Member)
		assert.Equal(t, "TagValueConstraintViolation", vt.Member.Name)

		require.NotNil(t, cb)
		require.Len(t, cb.Cases, 3)
		assert.NotNil(t, cb.Cases[0].Message)
		assert.NotNil(t, cb.Cases[1].Message)
		assert.Equal(t, MemberVariant, cb.Cases[2].Variant)
		assert.Equal(t, vt.Member, cb.Cases[2].Delegate)
	})

	t.Run("k variants with unconstrained member", func(t *testing.T) {
		in := tagsInput(t, true, true)
		in.IsMemberConstrained = false
		vt, _, err := SynthesizeCollectionViolation(in)
		require.NoError(t, err)
		assert.Len(t, vt.Variants, len(in.TraitInfos))
		assert.Nil(t, vt.Member)
		assert.NotContains(t, vt.VariantNames(), MemberVariant)
	})

	t.Run("k plus one variants with member last", func(t *testing.T) {
		for k := 0; k <= 2; k++ {
			in := tagsInput(t, true, false)
			in.TraitInfos = in.TraitInfos[:k]
			vt, _, err := SynthesizeCollectionViolation(in)
			require.NoError(t, err)
			require.Len(t, vt.Variants, k+1)
			assert.Equal(t, MemberVariant, vt.Variants[k].Name)
		}
	})

	t.Run("conversion iff reachable", func(t *testing.T) {
		_, cb, err := SynthesizeCollectionViolation(tagsInput(t, true, false))
		require.NoError(t, err)
		assert.Nil(t, cb)

		_, cb, err = SynthesizeCollectionViolation(tagsInput(t, true, true))
		require.NoError(t, err)
		assert.NotNil(t, cb)
	})

	t.Run("empty variant set is legal", func(t *testing.T) {
		in := tagsInput(t, false, true)
		in.TraitInfos = nil
		in.IsMemberConstrained = false
		vt, cb, err := SynthesizeCollectionViolation(in)
		require.NoError(t, err)
		assert.Empty(t, vt.Variants)
		require.NotNil(t, cb)
		assert.Empty(t, cb.Cases)

		out := render(func(f *jen.File) {
			vt.Render(f)
			cb.Render(f, Symbol{Name: validationFieldName, PkgPath: testPkg + "/model"})
		})
		assert.Contains(t, out, "type tagsConstraintViolation interface")
		assert.Contains(t, out, "default:")
	})

	t.Run("member required when constrained", func(t *testing.T) {
		in := tagsInput(t, true, true)
		in.Member = nil
		_, _, err := SynthesizeCollectionViolation(in)
		assert.True(t, IsGenerationError(err))
	})

	t.Run("duplicate variants are rejected", func(t *testing.T) {
		in := tagsInput(t, true, true)
		in.TraitInfos = append(in.TraitInfos, in.TraitInfos[0])
		_, _, err := SynthesizeCollectionViolation(in)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("resolution errors propagate", func(t *testing.T) {
		cause := errors.New("no symbol")
		in := tagsInput(t, false, true)
		in.Symbols = SymbolProviderFunc(func(*shape.Shape) (Symbol, error) { return Symbol{}, cause })
		_, _, err := SynthesizeCollectionViolation(in)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("rejects non collections", func(t *testing.T) {
		in := tagsInput(t, true, true)
		in.Shape = in.Member
		_, _, err := SynthesizeCollectionViolation(in)
		assert.True(t, IsGenerationError(err))
	})
}

func TestViolationVisibility(t *testing.T) {
	t.Run("private regardless of the base provider", func(t *testing.T) {
		vt, _, err := SynthesizeCollectionViolation(tagsInput(t, false, true))
		require.NoError(t, err)
		assert.Equal(t, PkgPrivate, vt.Symbol.Visibility)
		assert.Equal(t, PkgPrivate, vt.Member.Visibility)
		assert.Equal(t, "tagsConstraintViolation", vt.Symbol.Ident())
	})

	t.Run("public follows the base provider", func(t *testing.T) {
		vt, _, err := SynthesizeCollectionViolation(tagsInput(t, true, true))
		require.NoError(t, err)
		assert.Equal(t, Public, vt.Symbol.Visibility)
		assert.Equal(t, Public, vt.Member.Visibility)
	})

	t.Run("base provider is not mutated", func(t *testing.T) {
		in := tagsInput(t, false, true)
		_, _, err := SynthesizeCollectionViolation(in)
		require.NoError(t, err)
		sym, err := in.Symbols.ToSymbol(in.Shape)
		require.NoError(t, err)
		assert.Equal(t, Public, sym.Visibility)
	})
}

func TestViolationRender(t *testing.T) {
	fieldType := Symbol{Name: validationFieldName, PkgPath: testPkg + "/model"}

	t.Run("private types", func(t *testing.T) {
		vt, cb, err := SynthesizeCollectionViolation(tagsInput(t, false, true))
		require.NoError(t, err)
		out := render(func(f *jen.File) {
			vt.Render(f)
			cb.Render(f, fieldType)
		})

		assert.Contains(t, out, "package model")
		assert.Contains(t, out, "type tagsConstraintViolation interface")
		assert.Contains(t, out, "isTagsConstraintViolation()")
		assert.Contains(t, out, "type tagsConstraintViolationLength struct")
		assert.Contains(t, out, "type tagsConstraintViolationUniqueItems struct")
		assert.Contains(t, out, "type tagsConstraintViolationMember struct")
		assert.Contains(t, out, "Violation tagValueConstraintViolation")
		assert.Contains(t, out, "func (tagsConstraintViolationMember) isTagsConstraintViolation() {}")
		assert.Contains(t, out, "func tagsConstraintViolationAsValidationExceptionField(v tagsConstraintViolation, path string) ValidationExceptionField")
		assert.Contains(t, out, "case tagsConstraintViolationMember:")
		assert.Contains(t, out, "tagValueConstraintViolationAsValidationExceptionField(v.Violation")
		assert.Contains(t, out, "strconv.Itoa(v.Index)")
		assert.Contains(t, out, "Member must have length between 1 and 50, inclusive")
		assert.Contains(t, out, "v.DuplicateIndices")
		assert.NotContains(t, out, "model.")
	})

	t.Run("public types", func(t *testing.T) {
		vt, cb, err := SynthesizeCollectionViolation(tagsInput(t, true, true))
		require.NoError(t, err)
		out := render(func(f *jen.File) {
			vt.Render(f)
			cb.Render(f, fieldType)
		})
		assert.Contains(t, out, "type TagsConstraintViolation interface")
		assert.Contains(t, out, "type TagsConstraintViolationMember struct")
		assert.Contains(t, out, "func tagsConstraintViolationAsValidationExceptionField(v TagsConstraintViolation, path string)")
	})

	t.Run("no conversion when unreachable", func(t *testing.T) {
		vt, cb, err := SynthesizeCollectionViolation(tagsInput(t, false, false))
		require.NoError(t, err)
		require.Nil(t, cb)
		out := render(vt.Render)
		assert.NotContains(t, out, "AsValidationExceptionField")
	})

	t.Run("idempotent", func(t *testing.T) {
		once := func() string {
			vt, cb, err := SynthesizeCollectionViolation(tagsInput(t, false, true))
			require.NoError(t, err)
			return render(func(f *jen.File) {
				vt.Render(f)
				cb.Render(f, fieldType)
			})
		}
		assert.Equal(t, once(), once())
	})
}

func TestSynthesizeScalarViolation(t *testing.T) {
	m := tagsModel()
	tagValue := mustShape(m, "com.example#TagValue")
	infos, err := ScalarTraitInfos(tagValue, Builtin("string"))
	require.NoError(t, err)

	vt, cb, err := SynthesizeScalarViolation(ScalarViolationInput{
		Shape:            tagValue,
		TraitInfos:       infos,
		Symbols:          NewConstraintViolationSymbolProvider(testPkg + "/model"),
		IsInputReachable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Length"}, vt.VariantNames())
	assert.Equal(t, "tagValueConstraintViolation", vt.Symbol.Ident())
	require.NotNil(t, cb)
	assert.Equal(t, "tagValueConstraintViolationAsValidationExceptionField", cb.FuncName())

	_, _, err = SynthesizeScalarViolation(ScalarViolationInput{Shape: mustShape(m, "com.example#Tags")})
	assert.True(t, IsGenerationError(err))
}

func TestSynthesizeStructureViolation(t *testing.T) {
	m := tagsModel()
	input := mustShape(m, "com.example#PutTagsInput")

	vt, cb, err := SynthesizeStructureViolation(StructureViolationInput{
		Shape:            input,
		Constrained:      map[string]*shape.Shape{"tags": mustShape(m, "com.example#Tags")},
		Symbols:          NewConstraintViolationSymbolProvider(testPkg + "/model"),
		IsInputReachable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"MissingResourceArn", "Tags"}, vt.VariantNames())
	require.NotNil(t, cb)
	require.Len(t, cb.Cases, 2)
	assert.Equal(t, "resourceArn", cb.Cases[0].Segment)
	assert.Equal(t, "tags", cb.Cases[1].Segment)

	out := render(func(f *jen.File) {
		vt.Render(f)
		cb.Render(f, Symbol{Name: validationFieldName, PkgPath: testPkg + "/model"})
	})
	assert.Contains(t, out, "type putTagsInputConstraintViolationMissingResourceArn struct{}")
	assert.Contains(t, out, `"/resourceArn"`)
	assert.Contains(t, out, "tagsConstraintViolationAsValidationExceptionField(v.Violation")
	assert.Contains(t, out, "Member must not be null")

	t.Run("shape level constraints are fatal", func(t *testing.T) {
		s := &shape.Shape{ID: "com.example#S", Kind: shape.KindStructure, Traits: []shape.Trait{shape.LengthTrait{}}}
		_, _, err := SynthesizeStructureViolation(StructureViolationInput{Shape: s, Symbols: NewConstraintViolationSymbolProvider("m")})
		assert.True(t, IsConstraintError(err))
	})
}

func TestSynthesizeMapViolation(t *testing.T) {
	m := tagsModel()
	attrs := &shape.Shape{ID: "com.example#Attrs", Kind: shape.KindMap,
		Traits:  []shape.Trait{shape.LengthTrait{Max: shape.Int64(3)}},
		Members: []*shape.Member{{Name: "key", Target: "com.example#TagValue"}, {Name: "value", Target: "com.example#Tags"}},
	}
	infos, err := MapTraitInfos(attrs)
	require.NoError(t, err)

	in := MapViolationInput{
		Shape:            attrs,
		Key:              mustShape(m, "com.example#TagValue"),
		Value:            mustShape(m, "com.example#Tags"),
		KeyValue:         Builtin("string"),
		TraitInfos:       infos,
		Symbols:          NewConstraintViolationSymbolProvider(testPkg + "/model"),
		IsInputReachable: true,
	}
	vt, cb, err := SynthesizeMapViolation(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Length", "Key", "Value"}, vt.VariantNames())
	require.NotNil(t, cb)
	require.Len(t, cb.Cases, 3)
	assert.Equal(t, PathSelf, cb.Cases[1].Elem)
	assert.Equal(t, PathKey, cb.Cases[2].Elem)

	out := render(func(f *jen.File) {
		vt.Render(f)
		cb.Render(f, Symbol{Name: validationFieldName, PkgPath: testPkg + "/model"})
	})
	assert.Contains(t, out, "tagValueConstraintViolationAsValidationExceptionField(v.Violation, path)")
	assert.Contains(t, out, "tagsConstraintViolationAsValidationExceptionField(v.Violation")
	assert.Contains(t, out, "fmt.Sprint(v.Key)")

	t.Run("value only", func(t *testing.T) {
		in := in
		in.Key, in.TraitInfos = nil, nil
		vt, _, err := SynthesizeMapViolation(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"Value"}, vt.VariantNames())
	})

	t.Run("no conversion when unreachable", func(t *testing.T) {
		in := in
		in.IsInputReachable = false
		_, cb, err := SynthesizeMapViolation(in)
		require.NoError(t, err)
		assert.Nil(t, cb)
	})

	t.Run("requires a map", func(t *testing.T) {
		_, _, err := SynthesizeMapViolation(MapViolationInput{Shape: mustShape(m, "com.example#Tags")})
		assert.True(t, IsGenerationError(err))
	})
}
