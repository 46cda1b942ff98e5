// Package load decodes shape-graph snapshots into a shape.Model.
//
// A snapshot is a pre-resolved model: every shape is listed under its
// absolute id and every reference must resolve inside the snapshot. The same
// document can be encoded as JSON, YAML or msgpack:
//
//	version: "1.0"
//	shapes:
//	  com.example#TagValue:
//	    type: string
//	    traits:
//	      length: {min: 1, max: 128}
//	  com.example#Tags:
//	    type: list
//	    members:
//	      - {name: member, target: com.example#TagValue}
//	    traits:
//	      smithy.api#uniqueItems: {}
//
// Trait names may carry the "smithy.api#" prefix. Traits the generator has no
// dedicated type for are kept as shape.GenericTrait values, and are treated as
// constraints when listed under constraintTraits.
package load
