// Package shape holds the immutable shape graph consumed by the generator.
//
// A Model is a set of Shapes keyed by ShapeID. Aggregate shapes (lists, sets,
// maps, structures and unions) reference other shapes through Members, and
// any shape may carry Traits. Traits that restrict the set of valid values
// (length, uniqueItems, pattern, range, required) are constraint traits.
//
// The package exposes the two graph predicates the generator depends on:
//
//   - Model.CanReachConstrainedShape: a shape is constrained directly or
//     through any of its (transitive) members.
//   - Model.InputReachability: the set of shapes that can appear in data
//     accepted by some operation of the model.
//
// Models are built once and only read afterwards, so they can be shared by
// concurrent generation workers without locking.
//
//	m, err := shape.NewModel(
//	    &shape.Shape{ID: "com.example#TagValue", Kind: shape.KindString,
//	        Traits: []shape.Trait{shape.LengthTrait{Min: shape.Int64(1)}}},
//	    &shape.Shape{ID: "com.example#Tags", Kind: shape.KindList,
//	        Members: []*shape.Member{{Name: "member", Target: "com.example#TagValue"}}},
//	)
package shape
