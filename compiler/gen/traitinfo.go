package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/shapegen/shape"
)

// PathArg is the ValidationMessage argument standing for the member path.
const PathArg = "$path"

// ValidationMessage is a fmt format plus the names of its arguments. Each
// argument is a field of the variant, or PathArg.
type ValidationMessage struct {
	Format string
	Args   []string
}

// VariantField is a field of a violation variant struct.
type VariantField struct {
	Name string
	Type Symbol
	Doc  string
}

// Variant is one failure mode of a violation type.
type Variant struct {
	// Name is appended to the violation type name to form the variant type.
	Name   string
	Doc    []string
	Fields []VariantField
}

// ConstraintTraitInfo describes the violation variant and validation message
// derived from one constraint trait.
type ConstraintTraitInfo struct {
	Trait   shape.Trait
	Variant Variant
	Message ValidationMessage
}

// CollectionTraitInfos extracts one ConstraintTraitInfo per constraint trait
// of a list or set, in application order. memberValue is the value type of
// the collection member. Constraint traits other than length and uniqueItems
// are reported as a ConstraintError.
func CollectionTraitInfos(s *shape.Shape, memberValue Symbol) ([]ConstraintTraitInfo, error) {
	if !s.Kind.IsCollection() {
		return nil, NewGenerationError("violation", "", fmt.Sprintf("%s is a %s, not a collection", s.ID, s.Kind), nil)
	}
	var infos []ConstraintTraitInfo
	for _, t := range s.ConstraintTraits() {
		switch t := t.(type) {
		case shape.LengthTrait:
			infos = append(infos, lengthInfo(t, "collection"))
		case shape.UniqueItemsTrait:
			infos = append(infos, uniqueItemsInfo(t, memberValue))
		default:
			return nil, NewConstraintError(s, t.Name())
		}
	}
	return infos, nil
}

// ScalarTraitInfos extracts the ConstraintTraitInfos of a simple shape:
// length on strings and blobs, pattern on strings, range on numbers.
// value is the Go type of the shape value.
func ScalarTraitInfos(s *shape.Shape, value Symbol) ([]ConstraintTraitInfo, error) {
	var infos []ConstraintTraitInfo
	for _, t := range s.ConstraintTraits() {
		switch t := t.(type) {
		case shape.LengthTrait:
			if s.Kind != shape.KindString && s.Kind != shape.KindBlob {
				return nil, NewConstraintError(s, t.Name())
			}
			infos = append(infos, lengthInfo(t, s.Kind.String()))
		case shape.PatternTrait:
			if s.Kind != shape.KindString {
				return nil, NewConstraintError(s, t.Name())
			}
			infos = append(infos, patternInfo(t))
		case shape.RangeTrait:
			if !s.Kind.IsNumber() {
				return nil, NewConstraintError(s, t.Name())
			}
			infos = append(infos, rangeInfo(t, value))
		default:
			return nil, NewConstraintError(s, t.Name())
		}
	}
	return infos, nil
}

// MapTraitInfos extracts the ConstraintTraitInfos of a map. Only length
// applies to a map, bounding its number of entries.
func MapTraitInfos(s *shape.Shape) ([]ConstraintTraitInfo, error) {
	if s.Kind != shape.KindMap {
		return nil, NewGenerationError("violation", "", fmt.Sprintf("%s is a %s, not a map", s.ID, s.Kind), nil)
	}
	var infos []ConstraintTraitInfo
	for _, t := range s.ConstraintTraits() {
		lt, ok := t.(shape.LengthTrait)
		if !ok {
			return nil, NewConstraintError(s, t.Name())
		}
		infos = append(infos, lengthInfo(lt, "map"))
	}
	return infos, nil
}

func lengthInfo(t shape.LengthTrait, what string) ConstraintTraitInfo {
	return ConstraintTraitInfo{
		Trait: t,
		Variant: Variant{
			Name: variantName(t.Name()),
			Doc:  []string{fmt.Sprintf("Error when a %s doesn't satisfy its @length requirements.", what)},
			Fields: []VariantField{
				{Name: "Length", Type: Builtin("int"), Doc: "Length is the length of the rejected value."},
			},
		},
		Message: ValidationMessage{
			Format: "Value with length %d at '%s' failed to satisfy constraint: Member must have length " + boundsPhrase(t.Min, t.Max),
			Args:   []string{"Length", PathArg},
		},
	}
}

func uniqueItemsInfo(t shape.UniqueItemsTrait, memberValue Symbol) ConstraintTraitInfo {
	return ConstraintTraitInfo{
		Trait: t,
		Variant: Variant{
			Name: variantName(t.Name()),
			Doc: []string{
				"Error when a list doesn't satisfy its @uniqueItems requirement.",
				"DuplicateIndices holds the positions of every repeated element and",
				"Original holds the collection that was rejected.",
			},
			Fields: []VariantField{
				{Name: "DuplicateIndices", Type: SliceOf(Builtin("int"))},
				{Name: "Original", Type: SliceOf(memberValue)},
			},
		},
		Message: ValidationMessage{
			Format: "Value with repeated values at indices %v at '%s' failed to satisfy constraint: Member must have unique values",
			Args:   []string{"DuplicateIndices", PathArg},
		},
	}
}

func patternInfo(t shape.PatternTrait) ConstraintTraitInfo {
	return ConstraintTraitInfo{
		Trait: t,
		Variant: Variant{
			Name: variantName(t.Name()),
			Doc:  []string{"Error when a string doesn't satisfy its @pattern.", "Value holds the rejected string."},
			Fields: []VariantField{
				{Name: "Value", Type: Builtin("string")},
			},
		},
		Message: ValidationMessage{
			Format: "Value at '%s' failed to satisfy constraint: Member must satisfy regular expression pattern: " + escapeVerb(t.Pattern),
			Args:   []string{PathArg},
		},
	}
}

func rangeInfo(t shape.RangeTrait, value Symbol) ConstraintTraitInfo {
	return ConstraintTraitInfo{
		Trait: t,
		Variant: Variant{
			Name: variantName(t.Name()),
			Doc:  []string{"Error when a number doesn't satisfy its @range requirements.", "Value holds the rejected number."},
			Fields: []VariantField{
				{Name: "Value", Type: value},
			},
		},
		Message: ValidationMessage{
			Format: "Value %v at '%s' failed to satisfy constraint: Member must be " + rangePhrase(t.Min, t.Max),
			Args:   []string{"Value", PathArg},
		},
	}
}

// boundsPhrase renders the length requirement of a @length trait.
func boundsPhrase(lo, hi *int64) string {
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("between %d and %d, inclusive", *lo, *hi)
	case lo != nil:
		return fmt.Sprintf("greater than or equal to %d", *lo)
	case hi != nil:
		return fmt.Sprintf("less than or equal to %d", *hi)
	default:
		return "any length"
	}
}

func rangePhrase(lo, hi *int64) string {
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("between %d and %d, inclusive", *lo, *hi)
	case lo != nil:
		return fmt.Sprintf("greater than or equal to %d", *lo)
	case hi != nil:
		return fmt.Sprintf("less than or equal to %d", *hi)
	default:
		return "any number"
	}
}

// escapeVerb makes s safe to embed in a fmt format.
func escapeVerb(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
