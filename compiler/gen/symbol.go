package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/shapegen/shape"
)

// Visibility is the Go visibility of a generated identifier.
type Visibility uint8

const (
	// Public identifiers are exported.
	Public Visibility = iota
	// PkgPrivate identifiers are unexported and only usable inside the
	// generated package.
	PkgPrivate
)

// String implements fmt.Stringer.
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case PkgPrivate:
		return "pkg-private"
	default:
		return fmt.Sprintf("Visibility(%d)", uint8(v))
	}
}

// PublicIf returns Public when public is set, otherwise other.
func PublicIf(public bool, other Visibility) Visibility {
	if public {
		return Public
	}
	return other
}

// Symbol is a resolved Go type reference.
type Symbol struct {
	// Name is the exported spelling of the type name. Empty for slices and maps.
	Name string
	// PkgPath is the import path declaring the type. Empty for builtins.
	PkgPath string
	// Visibility decides how Name is spelled in generated code.
	Visibility Visibility
	// Key is set for maps.
	Key *Symbol
	// Elem is set for slices and maps.
	Elem *Symbol
}

// Builtin returns the symbol of a predeclared or composite-free type.
func Builtin(name string) Symbol {
	return Symbol{Name: name}
}

// SliceOf returns the symbol of a slice of elem.
func SliceOf(elem Symbol) Symbol {
	return Symbol{Elem: &elem}
}

// MapOf returns the symbol of a map from key to elem.
func MapOf(key, elem Symbol) Symbol {
	return Symbol{Key: &key, Elem: &elem}
}

// Ident returns the identifier spelled according to the symbol visibility.
func (s Symbol) Ident() string {
	if s.Visibility == PkgPrivate {
		return unexportName(s.Name)
	}
	return s.Name
}

// Child returns a symbol declared next to s whose name is s.Name+suffix,
// with the same package and visibility.
func (s Symbol) Child(suffix string) Symbol {
	return Symbol{Name: s.Name + suffix, PkgPath: s.PkgPath, Visibility: s.Visibility}
}

// Code returns the jennifer type expression of the symbol.
// Qualified names render unqualified inside files of the same package.
func (s Symbol) Code() *jen.Statement {
	switch {
	case s.Key != nil:
		return jen.Map(s.Key.Code()).Add(s.Elem.Code())
	case s.Elem != nil:
		return jen.Index().Add(s.Elem.Code())
	case s.PkgPath == "":
		return jen.Id(s.Ident())
	default:
		return jen.Qual(s.PkgPath, s.Ident())
	}
}

// String returns the Go spelling of the symbol.
func (s Symbol) String() string {
	return fmt.Sprintf("%#v", s.Code())
}

// SymbolProvider maps shapes to symbols.
type SymbolProvider interface {
	ToSymbol(s *shape.Shape) (Symbol, error)
}

// SymbolProviderFunc is an adapter to allow the use of ordinary functions as
// SymbolProvider.
type SymbolProviderFunc func(s *shape.Shape) (Symbol, error)

// ToSymbol calls f(s).
func (f SymbolProviderFunc) ToSymbol(s *shape.Shape) (Symbol, error) { return f(s) }

// ValueSymbolProvider maps shapes to the Go types holding their values.
type ValueSymbolProvider struct {
	model    *shape.Model
	modelPkg string
}

// NewValueSymbolProvider returns a provider naming named shapes in modelPkg.
func NewValueSymbolProvider(m *shape.Model, modelPkg string) *ValueSymbolProvider {
	return &ValueSymbolProvider{model: m, modelPkg: modelPkg}
}

// ToSymbol implements SymbolProvider.
func (p *ValueSymbolProvider) ToSymbol(s *shape.Shape) (Symbol, error) {
	if s == nil {
		return Symbol{}, &ResolutionError{Cause: fmt.Errorf("nil shape")}
	}
	switch s.Kind {
	case shape.KindString:
		return Builtin("string"), nil
	case shape.KindBoolean:
		return Builtin("bool"), nil
	case shape.KindByte:
		return Builtin("int8"), nil
	case shape.KindShort:
		return Builtin("int16"), nil
	case shape.KindInteger:
		return Builtin("int32"), nil
	case shape.KindLong:
		return Builtin("int64"), nil
	case shape.KindFloat:
		return Builtin("float32"), nil
	case shape.KindDouble:
		return Builtin("float64"), nil
	case shape.KindBlob:
		return SliceOf(Builtin("byte")), nil
	case shape.KindDocument:
		return Builtin("any"), nil
	case shape.KindTimestamp:
		return Symbol{Name: "Time", PkgPath: "time"}, nil
	case shape.KindList, shape.KindSet:
		elem, err := p.memberSymbol(s, "member")
		if err != nil {
			return Symbol{}, err
		}
		return SliceOf(elem), nil
	case shape.KindMap:
		key, err := p.memberSymbol(s, "key")
		if err != nil {
			return Symbol{}, err
		}
		elem, err := p.memberSymbol(s, "value")
		if err != nil {
			return Symbol{}, err
		}
		return MapOf(key, elem), nil
	case shape.KindStructure, shape.KindUnion:
		return Symbol{Name: exportName(s.Name()), PkgPath: p.modelPkg}, nil
	default:
		return Symbol{}, &ResolutionError{Shape: s.ID, Cause: fmt.Errorf("%s shapes have no value type", s.Kind)}
	}
}

func (p *ValueSymbolProvider) memberSymbol(s *shape.Shape, name string) (Symbol, error) {
	m, ok := s.Member(name)
	if !ok {
		return Symbol{}, &ResolutionError{Shape: s.ID, Cause: fmt.Errorf("missing %q member", name)}
	}
	target, err := p.model.Expect(m.Target)
	if err != nil {
		return Symbol{}, &ResolutionError{Shape: s.ID, Cause: err}
	}
	return p.ToSymbol(target)
}

// ConstraintViolationSymbolProvider names the constraint-violation type of a
// shape "<Shape>ConstraintViolation" in the model package. Symbols are public;
// see PkgPrivateSymbolProvider.
type ConstraintViolationSymbolProvider struct {
	modelPkg string
}

// NewConstraintViolationSymbolProvider returns a provider for modelPkg.
func NewConstraintViolationSymbolProvider(modelPkg string) *ConstraintViolationSymbolProvider {
	return &ConstraintViolationSymbolProvider{modelPkg: modelPkg}
}

// ToSymbol implements SymbolProvider.
func (p *ConstraintViolationSymbolProvider) ToSymbol(s *shape.Shape) (Symbol, error) {
	if s == nil {
		return Symbol{}, &ResolutionError{Cause: fmt.Errorf("nil shape")}
	}
	if s.Kind == shape.KindOperation || s.Kind == shape.KindService {
		return Symbol{}, &ResolutionError{Shape: s.ID, Cause: fmt.Errorf("%s shapes cannot be constrained", s.Kind)}
	}
	return Symbol{
		Name:       exportName(s.Name()) + "ConstraintViolation",
		PkgPath:    p.modelPkg,
		Visibility: Public,
	}, nil
}

// PkgPrivateSymbolProvider wraps a provider and forces every symbol it returns
// to be package-private. The wrapped provider is not modified, so other users
// of it keep seeing the original visibility.
type PkgPrivateSymbolProvider struct {
	base SymbolProvider
}

// NewPkgPrivateSymbolProvider wraps base.
func NewPkgPrivateSymbolProvider(base SymbolProvider) *PkgPrivateSymbolProvider {
	return &PkgPrivateSymbolProvider{base: base}
}

// ToSymbol delegates to the wrapped provider and overrides visibility.
// Errors of the wrapped provider are returned unchanged.
func (p *PkgPrivateSymbolProvider) ToSymbol(s *shape.Shape) (Symbol, error) {
	sym, err := p.base.ToSymbol(s)
	if err != nil {
		return Symbol{}, err
	}
	sym.Visibility = PkgPrivate
	return sym, nil
}

// violationSymbols returns the provider to use for violation types given the
// public-types setting.
func violationSymbols(base SymbolProvider, public bool) SymbolProvider {
	if public {
		return base
	}
	return NewPkgPrivateSymbolProvider(base)
}
