package decision

import "typecheck/pkg/types"

// IsContractive reports whether the nominal named `name`, whose body is
// `body`, is well-founded: every recursive cycle through Nominal edges
// passes through at least one constructor (Array, Record, Reference, or
// Callable) before returning to a name already being unfolded without one
// (spec §4.2, §9). `type X is X` is rejected; `type X is null | { X next }`
// is accepted.
func (e *Engine) IsContractive(name types.Name, body types.Type) (bool, error) {
	inProgress := map[types.Name]bool{name: true}
	return e.walkContractive(body, map[types.Name]bool{name: true}, inProgress)
}

// walkContractive recurses the body, tracking two sets:
//   - unguarded: names entered on the current path since the last
//     constructor was crossed; a revisit here is a genuine unguarded cycle.
//   - inProgress: every name entered anywhere in this call, used
//     coinductively so that a name already accepted (or being accepted)
//     along some other branch is not re-expanded, guaranteeing termination.
func (e *Engine) walkContractive(t types.Type, unguarded, inProgress map[types.Name]bool) (bool, error) {
	switch v := t.(type) {
	case *types.Union:
		for _, b := range v.Bounds {
			ok, err := e.walkContractive(b, unguarded, inProgress)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil

	case *types.Intersection:
		for _, b := range v.Bounds {
			ok, err := e.walkContractive(b, unguarded, inProgress)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil

	case *types.Difference:
		ok, err := e.walkContractive(v.Lhs, unguarded, inProgress)
		if err != nil || !ok {
			return ok, err
		}
		return e.walkContractive(v.Rhs, unguarded, inProgress)

	case *types.Negation:
		return e.walkContractive(v.Element, unguarded, inProgress)

	case *types.Nominal:
		if unguarded[v.QualifiedName] {
			return false, nil
		}
		if inProgress[v.QualifiedName] {
			return true, nil
		}
		nominalBody, err := e.Resolver.ResolveNominalBody(v.QualifiedName)
		if err != nil {
			return false, err
		}
		inProgress[v.QualifiedName] = true
		nextUnguarded := make(map[types.Name]bool, len(unguarded)+1)
		for k := range unguarded {
			nextUnguarded[k] = true
		}
		nextUnguarded[v.QualifiedName] = true
		return e.walkContractive(nominalBody, nextUnguarded, inProgress)

	case *types.Array:
		return e.walkContractive(v.Element, map[types.Name]bool{}, inProgress)

	case *types.Reference:
		return e.walkContractive(v.Element, map[types.Name]bool{}, inProgress)

	case *types.Record:
		for _, f := range v.Fields {
			ok, err := e.walkContractive(f.Type, map[types.Name]bool{}, inProgress)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil

	case *types.Function:
		return e.walkCallableChildren(v.Params, v.Returns, inProgress)
	case *types.Method:
		return e.walkCallableChildren(v.Params, v.Returns, inProgress)
	case *types.Property:
		return e.walkCallableChildren(v.Params, v.Returns, inProgress)

	default:
		// Atom: no children, trivially contractive.
		return true, nil
	}
}

func (e *Engine) walkCallableChildren(params, returns []types.Type, inProgress map[types.Name]bool) (bool, error) {
	for _, p := range params {
		ok, err := e.walkContractive(p, map[types.Name]bool{}, inProgress)
		if err != nil || !ok {
			return ok, err
		}
	}
	for _, r := range returns {
		ok, err := e.walkContractive(r, map[types.Name]bool{}, inProgress)
		if err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}
