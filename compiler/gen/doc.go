// Package gen generates Go clients and constraint-violation types from a
// shape model.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	shape.Model (loaded by compiler/load)
//	        ↓
//	   Generator.plan (sequential, decides every file)
//	        ├── violation types: Synthesize*Violation per constrained shape
//	        └── service files: Registry folds decorators per surface
//	        ↓
//	   Generator.GenerateFiles (parallel rendering with jennifer)
//	        ↓
//	   Generated code ({target}/)
//
// # Constraint Violations
//
// Every shape that can reach a constrained shape gets a violation type: a
// sealed interface with one struct per failure mode. For a collection the
// variants are one per constraint trait, in application order, followed by a
// Member variant when the element shape is itself constrained:
//
//	type TagsConstraintViolation interface{ isTagsConstraintViolation() }
//	type TagsConstraintViolationLength struct{ Length int }
//	type TagsConstraintViolationUniqueItems struct{ ... }
//	type TagsConstraintViolationMember struct {
//	    Index     int
//	    Violation TagValueConstraintViolation
//	}
//
// Shapes reachable from an operation input also get a conversion into a
// ValidationExceptionField. Types are unexported unless
// WithPublicConstrainedTypes(true) is given.
//
// # Sections and Decorators
//
// Generated service code exposes a closed set of sections (see section.go).
// A Decorator contributes customizations to the config surface, the
// operation surface, or ad-hoc events. The Registry applies decorators in
// ascending Order, ties in registration order, each one appending to the
// list accumulated so far:
//
//	reg := gen.NewRegistry(customize.NewCredentialsCacheDecorator(), customize.NewRetryConfigDecorator())
//	cs := reg.ConfigCustomizations(ctx, base)
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: invalid options or missing settings
//   - ConstraintError: a constraint trait that has no violation variant
//   - ResolutionError: a symbol provider failure
//   - GenerationError: planning, rendering or writing failures
//
// Each type matches its sentinel with errors.Is:
//
//	if errors.Is(err, gen.ErrUnsupportedConstraint) {
//	    // the model uses a trait the generator cannot represent
//	}
//
// # Generated Output
//
//	{target}/
//	├── config.go                 // Config, Builder and config sections
//	├── sdk_config.go             // FromSharedConfig and ad-hoc sections
//	├── {operation}_request.go    // prepare{Operation}Request
//	└── model/
//	    ├── {shape}_constraint_violation.go
//	    └── validation_exception.go
package gen
