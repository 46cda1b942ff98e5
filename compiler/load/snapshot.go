package load

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/syssam/shapegen/shape"
)

// SnapshotVersion is the version written by NewSnapshot. Snapshots with the
// same major version can be read.
const SnapshotVersion = "1.0"

// preludePrefix is stripped from trait names.
const preludePrefix = "smithy.api#"

// Snapshot is the serialized form of a resolved shape graph.
type Snapshot struct {
	Version string `json:"version" yaml:"version" msgpack:"version"`
	// ConstraintTraits names the traits, besides the built-in ones, that
	// restrict the set of valid values.
	ConstraintTraits []string             `json:"constraintTraits,omitempty" yaml:"constraintTraits,omitempty" msgpack:"constraintTraits,omitempty"`
	Shapes           map[string]*ShapeDef `json:"shapes" yaml:"shapes" msgpack:"shapes"`
}

// ShapeDef is a serialized shape.
type ShapeDef struct {
	Type       string       `json:"type" yaml:"type" msgpack:"type"`
	Traits     TraitDefs    `json:"traits,omitempty" yaml:"traits,omitempty" msgpack:"traits,omitempty"`
	Members    []*MemberDef `json:"members,omitempty" yaml:"members,omitempty" msgpack:"members,omitempty"`
	Input      string       `json:"input,omitempty" yaml:"input,omitempty" msgpack:"input,omitempty"`
	Output     string       `json:"output,omitempty" yaml:"output,omitempty" msgpack:"output,omitempty"`
	Operations []string     `json:"operations,omitempty" yaml:"operations,omitempty" msgpack:"operations,omitempty"`
}

// MemberDef is a serialized member. Members are kept in a list to preserve
// declaration order.
type MemberDef struct {
	Name   string    `json:"name" yaml:"name" msgpack:"name"`
	Target string    `json:"target" yaml:"target" msgpack:"target"`
	Traits TraitDefs `json:"traits,omitempty" yaml:"traits,omitempty" msgpack:"traits,omitempty"`
}

// NewSnapshot returns the snapshot of m.
func NewSnapshot(m *shape.Model) *Snapshot {
	s := &Snapshot{
		Version: SnapshotVersion,
		Shapes:  make(map[string]*ShapeDef, m.Len()),
	}
	constraints := make(map[string]struct{})
	for _, sh := range m.Shapes() {
		def := &ShapeDef{
			Type:   sh.Kind.String(),
			Traits: encodeTraits(sh.Traits, constraints),
			Input:  string(sh.Input),
			Output: string(sh.Output),
		}
		for _, mem := range sh.Members {
			def.Members = append(def.Members, &MemberDef{
				Name:   mem.Name,
				Target: string(mem.Target),
				Traits: encodeTraits(mem.Traits, constraints),
			})
		}
		for _, op := range sh.Operations {
			def.Operations = append(def.Operations, string(op))
		}
		s.Shapes[string(sh.ID)] = def
	}
	if len(constraints) > 0 {
		s.ConstraintTraits = slices.Sorted(maps.Keys(constraints))
	}
	return s
}

// Model validates the snapshot and builds its model.
func (s *Snapshot) Model() (*shape.Model, error) {
	if err := checkVersion(s.Version); err != nil {
		return nil, err
	}
	constraints := make(map[string]bool, len(s.ConstraintTraits))
	for _, name := range s.ConstraintTraits {
		constraints[strings.TrimPrefix(name, preludePrefix)] = true
	}
	shapes := make([]*shape.Shape, 0, len(s.Shapes))
	for _, id := range slices.Sorted(maps.Keys(s.Shapes)) {
		sh, err := s.Shapes[id].shape(id, constraints)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, sh)
	}
	m, err := shape.NewModel(shapes...)
	if err != nil {
		return nil, &ModelError{Cause: err}
	}
	if err := checkReferences(m); err != nil {
		return nil, err
	}
	return m, nil
}

func checkVersion(v string) error {
	if v == "" {
		return &ModelError{Message: "missing snapshot version"}
	}
	major, _, _ := strings.Cut(v, ".")
	want, _, _ := strings.Cut(SnapshotVersion, ".")
	if major != want {
		return &ModelError{Message: fmt.Sprintf("unsupported snapshot version %q", v)}
	}
	return nil
}

func (d *ShapeDef) shape(id string, constraints map[string]bool) (*shape.Shape, error) {
	if d == nil {
		return nil, shapeError(id, "empty definition")
	}
	sid, err := shape.ParseShapeID(id)
	if err != nil {
		return nil, &ModelError{Shape: id, Cause: err}
	}
	kind, err := shape.ParseKind(d.Type)
	if err != nil {
		return nil, &ModelError{Shape: id, Cause: err}
	}
	traits, err := decodeTraits(id, d.Traits, constraints)
	if err != nil {
		return nil, err
	}
	sh := &shape.Shape{
		ID:     sid,
		Kind:   kind,
		Traits: traits,
		Input:  shape.ShapeID(d.Input),
		Output: shape.ShapeID(d.Output),
	}
	for _, op := range d.Operations {
		sh.Operations = append(sh.Operations, shape.ShapeID(op))
	}
	seen := make(map[string]bool, len(d.Members))
	for _, md := range d.Members {
		if md == nil || md.Name == "" {
			return nil, shapeError(id, "member without a name")
		}
		if seen[md.Name] {
			return nil, shapeError(id, "duplicate member %q", md.Name)
		}
		seen[md.Name] = true
		traits, err := decodeTraits(id+"$"+md.Name, md.Traits, constraints)
		if err != nil {
			return nil, err
		}
		sh.Members = append(sh.Members, &shape.Member{
			Name:   md.Name,
			Target: shape.ShapeID(md.Target),
			Traits: traits,
		})
	}
	if err := checkMembers(sh); err != nil {
		return nil, err
	}
	return sh, nil
}

// checkMembers validates the member layout of sh against its kind.
func checkMembers(sh *shape.Shape) error {
	id := string(sh.ID)
	switch {
	case sh.Kind.IsCollection():
		if len(sh.Members) != 1 || sh.Members[0].Name != "member" {
			return shapeError(id, "a %s must have exactly one member named \"member\"", sh.Kind)
		}
	case sh.Kind == shape.KindMap:
		if len(sh.Members) != 2 {
			return shapeError(id, "a map must have a key and a value member")
		}
		if _, ok := sh.Member("key"); !ok {
			return shapeError(id, "a map must have a key and a value member")
		}
		if _, ok := sh.Member("value"); !ok {
			return shapeError(id, "a map must have a key and a value member")
		}
	case sh.Kind.IsAggregate():
	default:
		if len(sh.Members) > 0 {
			return shapeError(id, "a %s cannot have members", sh.Kind)
		}
	}
	if sh.Kind != shape.KindOperation && (sh.Input != "" || sh.Output != "") {
		return shapeError(id, "only operations have an input or an output")
	}
	if sh.Kind != shape.KindService && len(sh.Operations) > 0 {
		return shapeError(id, "only services bind operations")
	}
	return nil
}

// checkReferences reports the first reference to a shape missing from m.
func checkReferences(m *shape.Model) error {
	for _, sh := range m.Shapes() {
		refs := make([]shape.ShapeID, 0, len(sh.Members)+len(sh.Operations)+2)
		for _, mem := range sh.Members {
			refs = append(refs, mem.Target)
		}
		refs = append(refs, sh.Operations...)
		for _, id := range []shape.ShapeID{sh.Input, sh.Output} {
			if id != "" {
				refs = append(refs, id)
			}
		}
		for _, ref := range refs {
			if _, err := m.Expect(ref); err != nil {
				return &ModelError{Shape: string(sh.ID), Message: "dangling reference", Cause: err}
			}
		}
	}
	return nil
}

// decodeTraits decodes raw in document order. A trait may be spelled with or
// without the prelude namespace, but only once.
func decodeTraits(id string, raw TraitDefs, constraints map[string]bool) ([]shape.Trait, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	traits := make([]shape.Trait, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, def := range raw {
		name := strings.TrimPrefix(def.Name, preludePrefix)
		if seen[name] {
			return nil, shapeError(id, "trait %s applied more than once", name)
		}
		seen[name] = true
		t, err := decodeTrait(id, name, def.Value, constraints)
		if err != nil {
			return nil, err
		}
		traits = append(traits, t)
	}
	return traits, nil
}

func decodeTrait(id, name string, v any, constraints map[string]bool) (shape.Trait, error) {
	switch name {
	case shape.TraitLength:
		lo, hi, err := bounds(id, name, v)
		if err != nil {
			return nil, err
		}
		return shape.LengthTrait{Min: lo, Max: hi}, nil
	case shape.TraitRange:
		lo, hi, err := bounds(id, name, v)
		if err != nil {
			return nil, err
		}
		return shape.RangeTrait{Min: lo, Max: hi}, nil
	case shape.TraitPattern:
		p, ok := v.(string)
		if !ok {
			return nil, shapeError(id, "trait %s: expected a string, got %T", name, v)
		}
		return shape.PatternTrait{Pattern: p}, nil
	case shape.TraitDocumentation:
		doc, ok := v.(string)
		if !ok {
			return nil, shapeError(id, "trait %s: expected a string, got %T", name, v)
		}
		return shape.DocumentationTrait{Text: doc}, nil
	case shape.TraitUniqueItems:
		return shape.UniqueItemsTrait{}, nil
	case shape.TraitRequired:
		return shape.RequiredTrait{}, nil
	case shape.TraitSensitive:
		return shape.SensitiveTrait{}, nil
	default:
		return shape.GenericTrait{TraitName: name, IsConstraint: constraints[name], Value: v}, nil
	}
}

// bounds decodes a {min, max} trait value.
func bounds(id, name string, v any) (lo, hi *int64, err error) {
	if v == nil {
		return nil, nil, nil
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, nil, shapeError(id, "trait %s: expected an object, got %T", name, v)
	}
	if lo, err = bound(obj["min"]); err != nil {
		return nil, nil, shapeError(id, "trait %s: min: %v", name, err)
	}
	if hi, err = bound(obj["max"]); err != nil {
		return nil, nil, shapeError(id, "trait %s: max: %v", name, err)
	}
	if lo != nil && hi != nil && *lo > *hi {
		return nil, nil, shapeError(id, "trait %s: min %d is greater than max %d", name, *lo, *hi)
	}
	return lo, hi, nil
}

// asObject accepts the map types produced by the supported decoders.
func asObject(v any) (map[string]any, bool) {
	switch v := v.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		obj := make(map[string]any, len(v))
		for k, e := range v {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			obj[ks] = e
		}
		return obj, true
	default:
		return nil, false
	}
}

// bound converts a decoded number to an int64. Decoders differ in the
// numeric types they produce.
func bound(v any) (*int64, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case int:
		return shape.Int64(int64(n)), nil
	case int8:
		return shape.Int64(int64(n)), nil
	case int16:
		return shape.Int64(int64(n)), nil
	case int32:
		return shape.Int64(int64(n)), nil
	case int64:
		return shape.Int64(n), nil
	case uint8:
		return shape.Int64(int64(n)), nil
	case uint16:
		return shape.Int64(int64(n)), nil
	case uint32:
		return shape.Int64(int64(n)), nil
	case uint64:
		if n > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int64", n)
		}
		return shape.Int64(int64(n)), nil
	case float32:
		return floatBound(float64(n))
	case float64:
		return floatBound(n)
	default:
		return nil, fmt.Errorf("expected a number, got %T", v)
	}
}

func floatBound(f float64) (*int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	return shape.Int64(int64(f)), nil
}

func encodeTraits(traits []shape.Trait, constraints map[string]struct{}) TraitDefs {
	if len(traits) == 0 {
		return nil
	}
	out := make(TraitDefs, 0, len(traits))
	for _, t := range traits {
		var v any
		switch t := t.(type) {
		case shape.LengthTrait:
			v = encodeBounds(t.Min, t.Max)
		case shape.RangeTrait:
			v = encodeBounds(t.Min, t.Max)
		case shape.PatternTrait:
			v = t.Pattern
		case shape.DocumentationTrait:
			v = t.Text
		case shape.GenericTrait:
			v = t.Value
			if t.IsConstraint {
				constraints[t.Name()] = struct{}{}
			}
		default:
			v = map[string]any{}
		}
		out = append(out, TraitDef{Name: t.Name(), Value: v})
	}
	return out
}

func encodeBounds(lo, hi *int64) map[string]any {
	b := make(map[string]any, 2)
	if lo != nil {
		b["min"] = *lo
	}
	if hi != nil {
		b["max"] = *hi
	}
	return b
}
