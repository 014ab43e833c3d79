package extract

import (
	"typecheck/pkg/decision"
	"typecheck/pkg/dnf"
	"typecheck/pkg/types"
)

// RepresentationOf computes the Representation extractor (spec §4.3): the
// smallest simple type (no intersections or negations) enclosing t, used
// at the boundary to a lower IR that doesn't understand intersections.
// Non-empty conjuncts contribute one representative atom each (widened to
// strip any internal intersections/negations); the representatives are
// joined with a plain syntactic Union, itself already simple.
func RepresentationOf(t types.SemanticType, engine *decision.Engine) (types.Type, error) {
	d, err := dnf.ToDNF(t, engine.Resolver)
	if err != nil {
		return nil, err
	}

	var reps []types.Type
	for _, c := range d {
		empty, err := engine.ConjunctEmpty(c)
		if err != nil {
			return nil, err
		}
		if empty {
			continue
		}
		rep, err := representConjunct(c, engine)
		if err != nil {
			return nil, err
		}
		if rep != nil {
			reps = append(reps, rep)
		}
	}
	if len(reps) == 0 {
		return types.VoidType, nil
	}
	if len(reps) == 1 {
		return reps[0], nil
	}
	return types.NewUnion(reps...), nil
}

// representConjunct picks one representative atom from the conjunct's
// positives (an over-approximation is acceptable — "enclosing"), ignoring
// negatives entirely since a simple type cannot express subtraction.
func representConjunct(c dnf.Conjunct, engine *decision.Engine) (types.Type, error) {
	var rep types.Type
	for _, p := range c.Positives {
		if p == types.AnyType {
			continue
		}
		rep = p
		break
	}
	if rep == nil {
		rep = types.AnyType
	}
	return simplify(rep, engine)
}

// simplify recursively strips intersections/negations from a compound's
// interior so the whole tree is simple, not just its top level.
func simplify(t types.Type, engine *decision.Engine) (types.Type, error) {
	switch v := t.(type) {
	case *types.Array:
		elem, err := RepresentationOf(types.ToSemantic(v.Element), engine)
		if err != nil {
			return nil, err
		}
		return types.NewArray(elem), nil
	case *types.Reference:
		elem, err := RepresentationOf(types.ToSemantic(v.Element), engine)
		if err != nil {
			return nil, err
		}
		return types.NewReference(elem, v.Lifetime), nil
	case *types.Record:
		fields := make([]types.Field, len(v.Fields))
		for i, f := range v.Fields {
			simplified, err := RepresentationOf(types.ToSemantic(f.Type), engine)
			if err != nil {
				return nil, err
			}
			fields[i] = types.Field{Name: f.Name, Type: simplified}
		}
		rec, err := types.NewRecord(v.OpenRecord, fields)
		if err != nil {
			return nil, err
		}
		return rec, nil
	case *types.Function:
		params, returns, err := simplifySignature(v.Params, v.Returns, engine)
		if err != nil {
			return nil, err
		}
		return &types.Function{Params: params, Returns: returns}, nil
	case *types.Method:
		params, returns, err := simplifySignature(v.Params, v.Returns, engine)
		if err != nil {
			return nil, err
		}
		return &types.Method{Params: params, Returns: returns, CapturedLifetimes: v.CapturedLifetimes, DeclaredLifetimes: v.DeclaredLifetimes}, nil
	case *types.Property:
		params, returns, err := simplifySignature(v.Params, v.Returns, engine)
		if err != nil {
			return nil, err
		}
		return &types.Property{Params: params, Returns: returns}, nil
	default:
		return t, nil
	}
}

func simplifySignature(params, returns []types.Type, engine *decision.Engine) ([]types.Type, []types.Type, error) {
	sp := make([]types.Type, len(params))
	for i, p := range params {
		s, err := RepresentationOf(types.ToSemantic(p), engine)
		if err != nil {
			return nil, nil, err
		}
		sp[i] = s
	}
	sr := make([]types.Type, len(returns))
	for i, r := range returns {
		s, err := RepresentationOf(types.ToSemantic(r), engine)
		if err != nil {
			return nil, nil, err
		}
		sr[i] = s
	}
	return sp, sr, nil
}
