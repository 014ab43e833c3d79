package extract

import (
	"typecheck/pkg/decision"
	"typecheck/pkg/types"
)

func combineReference(_ *decision.Engine, positives []types.Type) (types.Type, bool, error) {
	var ref *types.Reference
	sawAny := false
	for _, p := range positives {
		if p == types.AnyType {
			sawAny = true
			continue
		}
		r, ok := p.(*types.Reference)
		if !ok {
			return nil, false, nil
		}
		if ref == nil {
			ref = r
			continue
		}
		if ref.EffectiveLifetime() != r.EffectiveLifetime() || !ref.Element.Equals(r.Element) {
			return nil, false, nil
		}
	}
	if ref == nil {
		if sawAny {
			return types.NewReference(types.AnyType, ""), true, nil
		}
		return nil, false, nil
	}
	return ref, true, nil
}

// unionReference merges per-conjunct reference candidates. References are
// invariant in their element and lifetime (spec §4.2), so a union of
// structurally distinct references has no single faithful representative;
// we widen the element via Union/Intersection per mode and fall back to
// the outermost lifetime (Star) when the candidates disagree, as a
// conservative simplification.
func unionReference(_ *decision.Engine, candidates []types.Type, mode Mode) (types.Type, error) {
	refs := make([]*types.Reference, len(candidates))
	for i, c := range candidates {
		refs[i] = c.(*types.Reference)
	}
	if len(refs) == 1 {
		return refs[0], nil
	}
	elem := refs[0].Element
	lifetime := refs[0].EffectiveLifetime()
	for _, r := range refs[1:] {
		if mode == Readable {
			elem = types.NewUnion(elem, r.Element)
		} else {
			elem = types.NewIntersection(elem, r.Element)
		}
		if r.EffectiveLifetime() != lifetime {
			lifetime = types.Star
		}
	}
	return types.NewReference(elem, lifetime), nil
}
