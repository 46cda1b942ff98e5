package gen

import (
	"fmt"
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/shapegen/shape"
)

// validationFieldName is the generated struct every conversion returns.
const validationFieldName = "ValidationExceptionField"

// planModel plans one file per shape needing a violation type, plus the
// validation exception file when any conversion is emitted.
func (g *Generator) planModel() ([]file, error) {
	var (
		files       []file
		conversions bool
	)
	for _, s := range g.model.Shapes() {
		if s.Kind == shape.KindOperation || s.Kind == shape.KindService {
			continue
		}
		if !g.model.CanReachConstrainedShape(s) {
			continue
		}
		vt, cb, err := g.synthesize(s)
		if err != nil {
			return nil, err
		}
		if cb != nil {
			conversions = true
		}
		files = append(files, file{
			rel: path.Join(modelDir, fileName(s.Name())+"_constraint_violation.go"),
			render: func() (*jen.File, error) {
				f := g.newFile(g.cfg.ModelPackage())
				vt.Render(f)
				if cb != nil {
					f.Line()
					cb.Render(f, g.validationFieldSymbol())
				}
				return f, nil
			},
		})
	}
	if conversions {
		files = append(files, file{
			rel:    path.Join(modelDir, "validation_exception.go"),
			render: g.renderValidationException,
		})
	}
	return files, nil
}

const modelDir = "model"

// synthesize dispatches on the shape kind. The predicates are computed here
// and passed in, so the synthesizers stay pure.
func (g *Generator) synthesize(s *shape.Shape) (*ViolationType, *ConversionBlock, error) {
	reachable := g.reach.Reachable(s.ID)
	switch {
	case s.Kind.IsCollection():
		m, err := s.CollectionMember()
		if err != nil {
			return nil, nil, NewGenerationError("violation", "", "", err)
		}
		target, err := g.model.Expect(m.Target)
		if err != nil {
			return nil, nil, &ResolutionError{Shape: s.ID, Cause: err}
		}
		value, err := g.values.ToSymbol(target)
		if err != nil {
			return nil, nil, err
		}
		infos, err := CollectionTraitInfos(s, value)
		if err != nil {
			return nil, nil, err
		}
		return SynthesizeCollectionViolation(CollectionViolationInput{
			Shape:                  s,
			Member:                 target,
			TraitInfos:             infos,
			Symbols:                g.violations,
			PublicConstrainedTypes: g.cfg.PublicConstrainedTypes,
			IsMemberConstrained:    g.model.CanReachConstrainedShape(target),
			IsInputReachable:       reachable,
		})
	case s.Kind == shape.KindStructure || s.Kind == shape.KindUnion:
		constrained := make(map[string]*shape.Shape)
		for _, m := range s.Members {
			target, err := g.model.Expect(m.Target)
			if err != nil {
				return nil, nil, &ResolutionError{Shape: s.ID, Cause: err}
			}
			if g.model.CanReachConstrainedShape(target) {
				constrained[m.Name] = target
			}
		}
		return SynthesizeStructureViolation(StructureViolationInput{
			Shape:                  s,
			Constrained:            constrained,
			Symbols:                g.violations,
			PublicConstrainedTypes: g.cfg.PublicConstrainedTypes,
			IsInputReachable:       reachable,
		})
	case s.Kind == shape.KindMap:
		in := MapViolationInput{
			Shape:                  s,
			Symbols:                g.violations,
			PublicConstrainedTypes: g.cfg.PublicConstrainedTypes,
			IsInputReachable:       reachable,
		}
		for _, name := range []string{"key", "value"} {
			m, ok := s.Member(name)
			if !ok {
				return nil, nil, NewGenerationError("violation", "", fmt.Sprintf("%s: map without a %s member", s.ID, name), nil)
			}
			target, err := g.model.Expect(m.Target)
			if err != nil {
				return nil, nil, &ResolutionError{Shape: s.ID, Cause: err}
			}
			if name == "key" {
				if in.KeyValue, err = g.values.ToSymbol(target); err != nil {
					return nil, nil, err
				}
			}
			if !g.model.CanReachConstrainedShape(target) {
				continue
			}
			if name == "key" {
				in.Key = target
			} else {
				in.Value = target
			}
		}
		infos, err := MapTraitInfos(s)
		if err != nil {
			return nil, nil, err
		}
		in.TraitInfos = infos
		return SynthesizeMapViolation(in)
	default:
		value, err := g.values.ToSymbol(s)
		if err != nil {
			return nil, nil, err
		}
		infos, err := ScalarTraitInfos(s, value)
		if err != nil {
			return nil, nil, err
		}
		return SynthesizeScalarViolation(ScalarViolationInput{
			Shape:                  s,
			TraitInfos:             infos,
			Symbols:                g.violations,
			PublicConstrainedTypes: g.cfg.PublicConstrainedTypes,
			IsInputReachable:       reachable,
		})
	}
}

func (g *Generator) validationFieldSymbol() Symbol {
	return Symbol{Name: validationFieldName, PkgPath: g.cfg.ModelPackage()}
}

// renderValidationException renders the exception returned to callers whose
// input failed validation.
func (g *Generator) renderValidationException() (*jen.File, error) {
	f := g.newFile(g.cfg.ModelPackage())

	f.Comment("ValidationExceptionField describes one invalid member of an input.")
	f.Type().Id(validationFieldName).Struct(
		jen.Comment("Message describes the violated constraint."),
		jen.Id("Message").String().Tag(map[string]string{"json": "message"}),
		jen.Comment("Path is the JSON pointer to the invalid member."),
		jen.Id("Path").String().Tag(map[string]string{"json": "path"}),
	)
	f.Line()

	f.Comment("ValidationException is returned when an input fails validation.")
	f.Type().Id("ValidationException").Struct(
		jen.Id("Message").String().Tag(map[string]string{"json": "message"}),
		jen.Id("FieldList").Index().Id(validationFieldName).Tag(map[string]string{"json": "fieldList,omitempty"}),
	)
	f.Line()

	f.Func().Params(jen.Id("e").Op("*").Id("ValidationException")).Id("Error").Params().String().Block(
		jen.If(jen.Len(jen.Id("e").Dot("FieldList")).Op("==").Lit(0)).Block(
			jen.Return(jen.Id("e").Dot("Message")),
		),
		jen.Return(jen.Qual("fmt", "Sprintf").Call(
			jen.Lit("%s: %s"),
			jen.Id("e").Dot("Message"),
			jen.Id("e").Dot("FieldList").Index(jen.Lit(0)).Dot("Message"),
		)),
	)
	return f, nil
}
