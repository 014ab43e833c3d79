package extract

import (
	"typecheck/pkg/decision"
	"typecheck/pkg/types"
)

// combineArray ANDs the array-shaped positives of one conjunct: their
// elements are intersected (every one of them must simultaneously hold).
func combineArray(_ *decision.Engine, positives []types.Type) (types.Type, bool, error) {
	var elems []types.Type
	sawAny := false
	for _, p := range positives {
		if p == types.AnyType {
			sawAny = true
			continue
		}
		arr, ok := p.(*types.Array)
		if !ok {
			return nil, false, nil // this conjunct doesn't denote an array at all
		}
		elems = append(elems, arr.Element)
	}
	if len(elems) == 0 {
		if sawAny {
			return types.NewArray(types.AnyType), true, nil
		}
		return nil, false, nil
	}
	elem := elems[0]
	for _, e := range elems[1:] {
		elem = types.NewIntersection(elem, e)
	}
	return types.NewArray(elem), true, nil
}

// unionArray merges the per-conjunct array candidates (spec §4.3):
// readable unions element types, writeable intersects them.
func unionArray(_ *decision.Engine, candidates []types.Type, mode Mode) (types.Type, error) {
	elems := make([]types.Type, len(candidates))
	for i, c := range candidates {
		elems[i] = c.(*types.Array).Element
	}
	elem := elems[0]
	for _, e := range elems[1:] {
		if mode == Readable {
			elem = types.NewUnion(elem, e)
		} else {
			elem = types.NewIntersection(elem, e)
		}
	}
	return types.NewArray(elem), nil
}
