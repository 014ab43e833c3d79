package extract

import (
	"typecheck/pkg/decision"
	"typecheck/pkg/types"
)

func callableParts(t types.Type) (params, returns []types.Type, ok bool) {
	switch v := t.(type) {
	case *types.Function:
		return v.Params, v.Returns, true
	case *types.Method:
		return v.Params, v.Returns, true
	case *types.Property:
		return v.Params, v.Returns, true
	}
	return nil, nil, false
}

func combineCallable(_ *decision.Engine, positives []types.Type) (types.Type, bool, error) {
	var rep types.Type
	sawAny := false
	for _, p := range positives {
		if p == types.AnyType {
			sawAny = true
			continue
		}
		params, returns, ok := callableParts(p)
		if !ok {
			return nil, false, nil
		}
		if rep == nil {
			rep = p
			continue
		}
		repParams, repReturns, _ := callableParts(rep)
		if len(repParams) != len(params) || len(repReturns) != len(returns) {
			return nil, false, nil
		}
	}
	if rep == nil {
		if sawAny {
			return &types.Function{}, true, nil
		}
		return nil, false, nil
	}
	return rep, true, nil
}

// unionCallable merges candidates for an indirect invocation's effective
// callable type (spec §4.4.3): parameters accepted safely regardless of
// which arm is actually called narrow via intersection (an argument must
// satisfy every arm), while returns widen via union (the call may in fact
// return from any arm). Readable and writeable modes coincide here, since
// a callable type is consumed only through invocation.
func unionCallable(_ *decision.Engine, candidates []types.Type, _ Mode) (types.Type, error) {
	allParams := make([][]types.Type, len(candidates))
	allReturns := make([][]types.Type, len(candidates))
	for i, c := range candidates {
		p, r, _ := callableParts(c)
		allParams[i] = p
		allReturns[i] = r
	}
	arity := len(allParams[0])
	retArity := len(allReturns[0])
	for _, p := range allParams[1:] {
		if len(p) != arity {
			// Disagreeing arity: fall back to the first candidate rather
			// than fabricate a signature (conservative simplification).
			return candidates[0], nil
		}
	}

	params := make([]types.Type, arity)
	for i := 0; i < arity; i++ {
		params[i] = allParams[0][i]
		for _, p := range allParams[1:] {
			params[i] = types.NewIntersection(params[i], p[i])
		}
	}
	returns := make([]types.Type, retArity)
	for i := 0; i < retArity; i++ {
		returns[i] = allReturns[0][i]
		for _, r := range allReturns[1:] {
			returns[i] = types.NewUnion(returns[i], r[i])
		}
	}
	return &types.Function{Params: params, Returns: returns}, nil
}
