package shape

import "strconv"

// Trait names recognized by the generator.
const (
	TraitLength        = "length"
	TraitUniqueItems   = "uniqueItems"
	TraitPattern       = "pattern"
	TraitRange         = "range"
	TraitRequired      = "required"
	TraitDocumentation = "documentation"
	TraitSensitive     = "sensitive"
)

// Trait is a piece of metadata applied to a shape or member.
type Trait interface {
	// Name returns the trait name without the "smithy.api#" prefix.
	Name() string
	// Constraint reports whether the trait restricts valid values.
	Constraint() bool
}

// LengthTrait bounds the length of strings, blobs, collections and maps.
// Nil bounds are unbounded.
type LengthTrait struct {
	Min *int64
	Max *int64
}

func (LengthTrait) Name() string     { return TraitLength }
func (LengthTrait) Constraint() bool { return true }

// UniqueItemsTrait requires every element of a list to be distinct.
type UniqueItemsTrait struct{}

func (UniqueItemsTrait) Name() string     { return TraitUniqueItems }
func (UniqueItemsTrait) Constraint() bool { return true }

// PatternTrait restricts strings to a regular expression.
type PatternTrait struct {
	Pattern string
}

func (PatternTrait) Name() string     { return TraitPattern }
func (PatternTrait) Constraint() bool { return true }

// RangeTrait bounds integral numbers. Nil bounds are unbounded.
type RangeTrait struct {
	Min *int64
	Max *int64
}

func (RangeTrait) Name() string     { return TraitRange }
func (RangeTrait) Constraint() bool { return true }

// RequiredTrait marks a structure member as mandatory.
type RequiredTrait struct{}

func (RequiredTrait) Name() string     { return TraitRequired }
func (RequiredTrait) Constraint() bool { return true }

// DocumentationTrait attaches documentation text.
type DocumentationTrait struct {
	Text string
}

func (DocumentationTrait) Name() string     { return TraitDocumentation }
func (DocumentationTrait) Constraint() bool { return false }

// SensitiveTrait marks data that must not be logged.
type SensitiveTrait struct{}

func (SensitiveTrait) Name() string     { return TraitSensitive }
func (SensitiveTrait) Constraint() bool { return false }

// GenericTrait is a trait the generator has no dedicated type for.
// IsConstraint is taken from the snapshot that declared it.
type GenericTrait struct {
	TraitName    string
	IsConstraint bool
	Value        any
}

func (t GenericTrait) Name() string     { return t.TraitName }
func (t GenericTrait) Constraint() bool { return t.IsConstraint }

// Int64 returns a pointer to v, for trait bounds.
func Int64(v int64) *int64 { return &v }

// FormatBound renders a bound for messages, "" for nil.
func FormatBound(b *int64) string {
	if b == nil {
		return ""
	}
	return strconv.FormatInt(*b, 10)
}
