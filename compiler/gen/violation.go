package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/shapegen/shape"
)

// MemberVariant is the name of the variant carrying the violation of a
// collection element.
const MemberVariant = "Member"

// CollectionViolationInput holds everything the synthesizer needs for one
// constrained collection. The two predicates are computed by the caller
// from the model, which keeps synthesis a pure function of its input.
type CollectionViolationInput struct {
	// Shape is the list or set being synthesized.
	Shape *shape.Shape
	// Member is the target of the collection member.
	Member *shape.Shape
	// TraitInfos are the constraint infos of Shape, in application order.
	TraitInfos []ConstraintTraitInfo
	// Symbols names violation types. It is wrapped, never modified, when
	// PublicConstrainedTypes is false.
	Symbols SymbolProvider

	PublicConstrainedTypes bool
	IsMemberConstrained    bool
	IsInputReachable       bool
}

// ScalarViolationInput is the input of SynthesizeScalarViolation.
type ScalarViolationInput struct {
	Shape                  *shape.Shape
	TraitInfos             []ConstraintTraitInfo
	Symbols                SymbolProvider
	PublicConstrainedTypes bool
	IsInputReachable       bool
}

// ViolationType is a synthesized sum type: a sealed interface plus one
// struct per variant.
type ViolationType struct {
	Shape    shape.ShapeID
	Symbol   Symbol
	Variants []Variant
	// Member is the violation type of the collection element when the last
	// variant is MemberVariant.
	Member *Symbol
}

// ConversionCase maps one variant to a validation exception field. Exactly
// one of Message and Delegate is set.
type ConversionCase struct {
	Variant  string
	Message  *ValidationMessage
	Delegate *Symbol
	// Segment is appended to the path of structure members.
	Segment string
	// Elem is what a delegating case appends to the path of a collection
	// or map element.
	Elem PathElem
}

// PathElem selects the element a delegating conversion appends to the path.
type PathElem uint8

const (
	// PathSelf keeps the path of the enclosing shape.
	PathSelf PathElem = iota
	// PathIndex appends the Index field of the variant.
	PathIndex
	// PathKey appends the Key field of the variant.
	PathKey
)

// ConversionBlock is the function converting a violation into a
// ValidationExceptionField.
type ConversionBlock struct {
	Type  Symbol
	Cases []ConversionCase
}

// SynthesizeCollectionViolation builds the violation type of a constrained
// collection and, when the collection is reachable from an operation input,
// its conversion block. The returned block is nil otherwise.
func SynthesizeCollectionViolation(in CollectionViolationInput) (*ViolationType, *ConversionBlock, error) {
	if in.Shape == nil || !in.Shape.Kind.IsCollection() {
		return nil, nil, NewGenerationError("violation", "", "collection shape required", nil)
	}
	symbols := violationSymbols(in.Symbols, in.PublicConstrainedTypes)
	sym, err := symbols.ToSymbol(in.Shape)
	if err != nil {
		return nil, nil, err
	}
	vt := &ViolationType{Shape: in.Shape.ID, Symbol: sym}
	for _, info := range in.TraitInfos {
		vt.Variants = append(vt.Variants, info.Variant)
	}
	if in.IsMemberConstrained {
		if in.Member == nil {
			return nil, nil, NewGenerationError("violation", "", fmt.Sprintf("%s: member shape required", in.Shape.ID), nil)
		}
		msym, err := symbols.ToSymbol(in.Member)
		if err != nil {
			return nil, nil, err
		}
		vt.Member = &msym
		vt.Variants = append(vt.Variants, Variant{
			Name: MemberVariant,
			Doc: []string{
				"Error when an element doesn't satisfy its own constraints.",
				"Index is the position in the collection where the first",
				"constraint violation was found.",
			},
			Fields: []VariantField{
				{Name: "Index", Type: Builtin("int")},
				{Name: "Violation", Type: msym},
			},
		})
	}
	if err := checkVariants(vt); err != nil {
		return nil, nil, err
	}
	if !in.IsInputReachable {
		return vt, nil, nil
	}
	return vt, conversionOf(vt, in.TraitInfos), nil
}

// SynthesizeScalarViolation builds the violation type of a constrained
// simple shape. It never has a member variant.
func SynthesizeScalarViolation(in ScalarViolationInput) (*ViolationType, *ConversionBlock, error) {
	if in.Shape == nil || in.Shape.Kind.IsAggregate() {
		return nil, nil, NewGenerationError("violation", "", "simple shape required", nil)
	}
	sym, err := violationSymbols(in.Symbols, in.PublicConstrainedTypes).ToSymbol(in.Shape)
	if err != nil {
		return nil, nil, err
	}
	vt := &ViolationType{Shape: in.Shape.ID, Symbol: sym}
	for _, info := range in.TraitInfos {
		vt.Variants = append(vt.Variants, info.Variant)
	}
	if err := checkVariants(vt); err != nil {
		return nil, nil, err
	}
	if !in.IsInputReachable {
		return vt, nil, nil
	}
	return vt, conversionOf(vt, in.TraitInfos), nil
}

// StructureViolationInput is the input of SynthesizeStructureViolation.
type StructureViolationInput struct {
	Shape *shape.Shape
	// Constrained holds the targets of the members that can reach a
	// constrained shape, keyed by member name.
	Constrained            map[string]*shape.Shape
	Symbols                SymbolProvider
	PublicConstrainedTypes bool
	IsInputReachable       bool
}

// SynthesizeStructureViolation builds the violation type of a structure or
// union. Members are visited in declaration order; a required member yields
// a Missing<Member> variant, a constrained member yields a <Member> variant
// wrapping the violation of its target.
func SynthesizeStructureViolation(in StructureViolationInput) (*ViolationType, *ConversionBlock, error) {
	if in.Shape == nil || (in.Shape.Kind != shape.KindStructure && in.Shape.Kind != shape.KindUnion) {
		return nil, nil, NewGenerationError("violation", "", "structure or union shape required", nil)
	}
	if ts := in.Shape.ConstraintTraits(); len(ts) > 0 {
		return nil, nil, NewConstraintError(in.Shape, ts[0].Name())
	}
	symbols := violationSymbols(in.Symbols, in.PublicConstrainedTypes)
	sym, err := symbols.ToSymbol(in.Shape)
	if err != nil {
		return nil, nil, err
	}
	vt := &ViolationType{Shape: in.Shape.ID, Symbol: sym}
	cb := &ConversionBlock{Type: sym}
	for _, m := range in.Shape.Members {
		name := exportName(m.Name)
		if m.IsRequired() {
			variant := "Missing" + name
			vt.Variants = append(vt.Variants, Variant{
				Name: variant,
				Doc:  []string{fmt.Sprintf("Error when the required member %s is not set.", m.Name)},
			})
			cb.Cases = append(cb.Cases, ConversionCase{
				Variant: variant,
				Message: &ValidationMessage{
					Format: "Value at '%s' failed to satisfy constraint: Member must not be null",
					Args:   []string{PathArg},
				},
				Segment: m.Name,
			})
		}
		target, ok := in.Constrained[m.Name]
		if !ok {
			continue
		}
		tsym, err := symbols.ToSymbol(target)
		if err != nil {
			return nil, nil, err
		}
		vt.Variants = append(vt.Variants, Variant{
			Name:   name,
			Doc:    []string{fmt.Sprintf("Error when the member %s doesn't satisfy its constraints.", m.Name)},
			Fields: []VariantField{{Name: "Violation", Type: tsym}},
		})
		cb.Cases = append(cb.Cases, ConversionCase{Variant: name, Delegate: &tsym, Segment: m.Name})
	}
	if err := checkVariants(vt); err != nil {
		return nil, nil, err
	}
	if !in.IsInputReachable {
		return vt, nil, nil
	}
	return vt, cb, nil
}

// MapViolationInput is the input of SynthesizeMapViolation.
type MapViolationInput struct {
	Shape *shape.Shape
	// Key and Value are the targets of the map members. Each is set only
	// when it can reach a constrained shape.
	Key, Value *shape.Shape
	// KeyValue is the Go type of the map keys.
	KeyValue               Symbol
	TraitInfos             []ConstraintTraitInfo
	Symbols                SymbolProvider
	PublicConstrainedTypes bool
	IsInputReachable       bool
}

// SynthesizeMapViolation builds the violation type of a map that can reach a
// constrained shape: the length variant of the map itself, then a Key
// variant and a Value variant for constrained keys and values.
func SynthesizeMapViolation(in MapViolationInput) (*ViolationType, *ConversionBlock, error) {
	if in.Shape == nil || in.Shape.Kind != shape.KindMap {
		return nil, nil, NewGenerationError("violation", "", "map shape required", nil)
	}
	symbols := violationSymbols(in.Symbols, in.PublicConstrainedTypes)
	sym, err := symbols.ToSymbol(in.Shape)
	if err != nil {
		return nil, nil, err
	}
	vt := &ViolationType{Shape: in.Shape.ID, Symbol: sym}
	for _, info := range in.TraitInfos {
		vt.Variants = append(vt.Variants, info.Variant)
	}
	cb := conversionOf(vt, in.TraitInfos)
	if in.Key != nil {
		ksym, err := symbols.ToSymbol(in.Key)
		if err != nil {
			return nil, nil, err
		}
		vt.Variants = append(vt.Variants, Variant{
			Name:   "Key",
			Doc:    []string{"Error when a key doesn't satisfy its own constraints."},
			Fields: []VariantField{{Name: "Violation", Type: ksym}},
		})
		cb.Cases = append(cb.Cases, ConversionCase{Variant: "Key", Delegate: &ksym})
	}
	if in.Value != nil {
		vsym, err := symbols.ToSymbol(in.Value)
		if err != nil {
			return nil, nil, err
		}
		vt.Variants = append(vt.Variants, Variant{
			Name: "Value",
			Doc: []string{
				"Error when a value doesn't satisfy its own constraints.",
				"Key is the entry holding the rejected value.",
			},
			Fields: []VariantField{
				{Name: "Key", Type: in.KeyValue},
				{Name: "Violation", Type: vsym},
			},
		})
		cb.Cases = append(cb.Cases, ConversionCase{Variant: "Value", Delegate: &vsym, Elem: PathKey})
	}
	if err := checkVariants(vt); err != nil {
		return nil, nil, err
	}
	if !in.IsInputReachable {
		return vt, nil, nil
	}
	return vt, cb, nil
}

func checkVariants(vt *ViolationType) error {
	seen := make(map[string]bool, len(vt.Variants))
	for _, v := range vt.Variants {
		if seen[v.Name] {
			return NewGenerationError("violation", "", fmt.Sprintf("%s: duplicate variant %q", vt.Shape, v.Name), nil)
		}
		seen[v.Name] = true
	}
	return nil
}

func conversionOf(vt *ViolationType, infos []ConstraintTraitInfo) *ConversionBlock {
	cb := &ConversionBlock{Type: vt.Symbol}
	for _, info := range infos {
		msg := info.Message
		cb.Cases = append(cb.Cases, ConversionCase{Variant: info.Variant.Name, Message: &msg})
	}
	if vt.Member != nil {
		cb.Cases = append(cb.Cases, ConversionCase{Variant: MemberVariant, Delegate: vt.Member, Elem: PathIndex})
	}
	return cb
}

// VariantNames returns the variant names in order.
func (vt *ViolationType) VariantNames() []string {
	names := make([]string, len(vt.Variants))
	for i, v := range vt.Variants {
		names[i] = v.Name
	}
	return names
}

// VariantSymbol returns the struct symbol of a variant.
func (vt *ViolationType) VariantSymbol(variant string) Symbol {
	return vt.Symbol.Child(variant)
}

// markerMethod is the unexported method sealing the interface.
func (vt *ViolationType) markerMethod() string {
	return "is" + vt.Symbol.Name
}

// Render adds the interface and its variant structs to f.
func (vt *ViolationType) Render(f *jen.File) {
	name := vt.Symbol.Ident()
	f.Commentf("%s enumerates the constraint violations of %s.", name, vt.Shape.Name())
	f.Type().Id(name).Interface(
		jen.Id(vt.markerMethod()).Params(),
	)
	for _, v := range vt.Variants {
		vsym := vt.VariantSymbol(v.Name)
		f.Line()
		for _, line := range v.Doc {
			f.Comment(line)
		}
		f.Type().Id(vsym.Ident()).StructFunc(func(g *jen.Group) {
			for _, field := range v.Fields {
				if field.Doc != "" {
					g.Comment(field.Doc)
				}
				g.Id(field.Name).Add(field.Type.Code())
			}
		})
		f.Line()
		f.Func().Params(vsym.Code()).Id(vt.markerMethod()).Params().Block()
	}
}

// FuncName returns the name of the conversion function. It is always
// unexported: only the generated server glue calls it.
func (cb *ConversionBlock) FuncName() string {
	return conversionFuncName(cb.Type)
}

func conversionFuncName(sym Symbol) string {
	return unexportName(sym.Name) + "AsValidationExceptionField"
}

// Render adds the conversion function to f. fieldType is the symbol of the
// generated ValidationExceptionField struct.
func (cb *ConversionBlock) Render(f *jen.File, fieldType Symbol) {
	f.Commentf("%s converts a violation found at path into a validation exception field.", cb.FuncName())
	f.Func().Id(cb.FuncName()).Params(
		jen.Id("v").Add(cb.Type.Code()),
		jen.Id("path").String(),
	).Add(fieldType.Code()).Block(
		jen.Switch(jen.Id("v").Op(":=").Id("v").Assert(jen.Type())).BlockFunc(func(g *jen.Group) {
			for _, c := range cb.Cases {
				g.Case(cb.Type.Child(c.Variant).Code()).Block(cb.caseBody(c, fieldType))
			}
			g.Default().Block(jen.Return(fieldType.Code().Values(jen.Dict{
				jen.Id("Message"): jen.Qual("fmt", "Sprintf").Call(jen.Lit("unknown constraint violation %T at '%s'"), jen.Id("v"), jen.Id("path")),
				jen.Id("Path"):    jen.Id("path"),
			})))
		}),
	)
}

func (cb *ConversionBlock) caseBody(c ConversionCase, fieldType Symbol) *jen.Statement {
	path := func() *jen.Statement {
		if c.Segment != "" {
			return jen.Id("path").Op("+").Lit("/" + c.Segment)
		}
		return jen.Id("path")
	}
	if c.Delegate != nil {
		next := path()
		switch c.Elem {
		case PathIndex:
			next = next.Op("+").Lit("/").Op("+").Qual("strconv", "Itoa").Call(jen.Id("v").Dot("Index"))
		case PathKey:
			next = next.Op("+").Lit("/").Op("+").Qual("fmt", "Sprint").Call(jen.Id("v").Dot("Key"))
		}
		return jen.Return(jen.Id(conversionFuncName(*c.Delegate)).Call(jen.Id("v").Dot("Violation"), next))
	}
	args := []jen.Code{jen.Lit(c.Message.Format)}
	for _, a := range c.Message.Args {
		if a == PathArg {
			args = append(args, path())
			continue
		}
		args = append(args, jen.Id("v").Dot(a))
	}
	return jen.Return(fieldType.Code().Values(jen.Dict{
		jen.Id("Message"): jen.Qual("fmt", "Sprintf").Call(args...),
		jen.Id("Path"):    path(),
	}))
}
