package shape

import (
	"fmt"
	"strings"
)

// ShapeID is an absolute shape identifier of the form "namespace#Name".
type ShapeID string

// ParseShapeID validates s and returns it as a ShapeID.
func ParseShapeID(s string) (ShapeID, error) {
	ns, name, ok := strings.Cut(s, "#")
	if !ok || ns == "" || name == "" || strings.Contains(name, "#") {
		return "", fmt.Errorf("shape: invalid shape id %q: expected namespace#Name", s)
	}
	return ShapeID(s), nil
}

// Namespace returns the part of the identifier before '#'.
func (id ShapeID) Namespace() string {
	ns, _, _ := strings.Cut(string(id), "#")
	return ns
}

// Name returns the part of the identifier after '#'.
// Identifiers without a namespace are returned unchanged.
func (id ShapeID) Name() string {
	if _, name, ok := strings.Cut(string(id), "#"); ok {
		return name
	}
	return string(id)
}

// String implements fmt.Stringer.
func (id ShapeID) String() string { return string(id) }

// Kind is the type of a shape.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBlob
	KindBoolean
	KindString
	KindByte
	KindShort
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindTimestamp
	KindDocument
	KindList
	KindSet
	KindMap
	KindStructure
	KindUnion
	KindOperation
	KindService
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindBlob:      "blob",
	KindBoolean:   "boolean",
	KindString:    "string",
	KindByte:      "byte",
	KindShort:     "short",
	KindInteger:   "integer",
	KindLong:      "long",
	KindFloat:     "float",
	KindDouble:    "double",
	KindTimestamp: "timestamp",
	KindDocument:  "document",
	KindList:      "list",
	KindSet:       "set",
	KindMap:       "map",
	KindStructure: "structure",
	KindUnion:     "union",
	KindOperation: "operation",
	KindService:   "service",
}

// String returns the schema name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the Kind for its schema name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindInvalid {
			return Kind(k), nil
		}
	}
	return KindInvalid, fmt.Errorf("shape: unknown kind %q", s)
}

// IsCollection reports whether the kind is a list or a set.
func (k Kind) IsCollection() bool { return k == KindList || k == KindSet }

// IsAggregate reports whether shapes of this kind have members.
func (k Kind) IsAggregate() bool {
	switch k {
	case KindList, KindSet, KindMap, KindStructure, KindUnion:
		return true
	default:
		return false
	}
}

// IsNumber reports whether the kind is a numeric simple type.
func (k Kind) IsNumber() bool {
	switch k {
	case KindByte, KindShort, KindInteger, KindLong, KindFloat, KindDouble:
		return true
	default:
		return false
	}
}

// Shape is a node of the model.
type Shape struct {
	ID     ShapeID
	Kind   Kind
	Traits []Trait
	// Members of aggregate shapes. Collections have exactly one member
	// named "member"; maps have "key" and "value".
	Members []*Member
	// Input and Output are set on operations.
	Input  ShapeID
	Output ShapeID
	// Operations are set on services.
	Operations []ShapeID
}

// Name returns the shape name without its namespace.
func (s *Shape) Name() string { return s.ID.Name() }

// Trait returns the first trait with the given name.
func (s *Shape) Trait(name string) (Trait, bool) {
	return findTrait(s.Traits, name)
}

// HasTrait reports whether the shape carries the named trait.
func (s *Shape) HasTrait(name string) bool {
	_, ok := s.Trait(name)
	return ok
}

// ConstraintTraits returns the constraint traits in application order.
func (s *Shape) ConstraintTraits() []Trait {
	return constraintTraits(s.Traits)
}

// Member returns the member with the given name.
func (s *Shape) Member(name string) (*Member, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// CollectionMember returns the single member of a list or set.
func (s *Shape) CollectionMember() (*Member, error) {
	if !s.Kind.IsCollection() {
		return nil, fmt.Errorf("shape: %s is a %s, not a collection", s.ID, s.Kind)
	}
	m, ok := s.Member("member")
	if !ok {
		return nil, fmt.Errorf("shape: collection %s has no member", s.ID)
	}
	return m, nil
}

// Member is a named reference from an aggregate shape to its target.
type Member struct {
	Name   string
	Target ShapeID
	Traits []Trait
}

// Trait returns the first member trait with the given name.
func (m *Member) Trait(name string) (Trait, bool) {
	return findTrait(m.Traits, name)
}

// IsRequired reports whether the member carries the required trait.
func (m *Member) IsRequired() bool {
	_, ok := m.Trait(TraitRequired)
	return ok
}

func findTrait(traits []Trait, name string) (Trait, bool) {
	for _, t := range traits {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

func constraintTraits(traits []Trait) []Trait {
	var out []Trait
	for _, t := range traits {
		if t.Constraint() {
			out = append(out, t)
		}
	}
	return out
}
