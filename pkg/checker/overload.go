package checker

import (
	"fmt"

	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/resolve"
	"typecheck/pkg/types"
)

// candidateSignature is one arity-matching, lifetime-substituted overload
// candidate under consideration for a direct invocation (spec §4.4.4).
type candidateSignature struct {
	decl    *ast.CallableDecl
	params  []types.Type
	returns []types.Type
}

// checkDirectInvocation resolves a statically-named callable against the
// inferred argument types (spec §4.4.3, §4.4.4): filter by arity,
// enumerate lifetime substitutions, filter by per-argument applicability,
// then let applicable bindings compete on specificity.
func (c *Checker) checkDirectInvocation(v *ast.DirectInvocationExpr, env *TypingEnvironment) types.SemanticType {
	decls, err := c.Resolver.ResolveAll(v.Callee, resolve.KindCallable)
	if err != nil || len(decls) == 0 {
		c.Reporter.TypeError(cerrors.KindResolution, fmt.Sprintf("cannot resolve callable %q", v.Callee), v.Pos())
		return c.fallbackInvocationArgs(v, env)
	}

	var byArity []*ast.CallableDecl
	for _, d := range decls {
		cd, ok := d.(resolve.CallableDeclaration)
		if !ok {
			continue
		}
		if len(cd.Decl.Params) == len(v.Args) {
			byArity = append(byArity, cd.Decl)
		}
	}
	if len(byArity) == 0 {
		c.Reporter.TypeError(cerrors.KindResolution, fmt.Sprintf("no overload of %q accepts %d arguments", v.Callee, len(v.Args)), v.Pos())
		return c.fallbackInvocationArgs(v, env)
	}

	argTypes := make([]types.SemanticType, len(v.Args))
	for i, arg := range v.Args {
		argTypes[i] = c.checkExpression(arg, env, []types.Type{types.AnyType})
	}
	universe := lifetimeUniverse(argTypes)

	var candidates []candidateSignature
	for _, decl := range byArity {
		candidates = append(candidates, c.substituteLifetimes(decl, v.LifetimeArgs, universe)...)
	}

	var applicable []candidateSignature
	for _, cand := range candidates {
		ok := true
		for i, p := range cand.params {
			sub, err := c.Engine.IsSubtype(types.ToSemantic(p), argTypes[i])
			if err != nil {
				c.internalFailure("checking overload applicability", v.Pos(), err)
				return c.fallbackInvocationArgs(v, env)
			}
			if !sub {
				ok = false
				break
			}
		}
		if ok {
			applicable = append(applicable, cand)
		}
	}

	switch len(applicable) {
	case 0:
		c.Reporter.TypeError(cerrors.KindResolution, fmt.Sprintf("no overload of %q is applicable to the given arguments", v.Callee), v.Pos())
		return c.fallbackInvocationArgs(v, env)
	case 1:
		return c.finalizeDirectInvocation(v, env, applicable[0])
	}

	winner, ambiguous, err := c.pickBestCandidate(applicable)
	if err != nil {
		c.internalFailure("comparing overload candidates", v.Pos(), err)
		return c.fallbackInvocationArgs(v, env)
	}
	if ambiguous {
		c.Reporter.TypeError(cerrors.KindAmbiguousResolution, fmt.Sprintf("call to %q is ambiguous among %d equally-applicable overloads", v.Callee, len(applicable)), v.Pos())
		return c.fallbackInvocationArgs(v, env)
	}
	return c.finalizeDirectInvocation(v, env, winner)
}

// finalizeDirectInvocation re-checks each argument against the winning
// signature's parameter types (so its concrete type reflects the actual
// resolved overload), records the resolved signature on the invocation
// node, and returns the return type (the semantic intersection of the
// return types when there are several).
func (c *Checker) finalizeDirectInvocation(v *ast.DirectInvocationExpr, env *TypingEnvironment, winner candidateSignature) types.SemanticType {
	for i, arg := range v.Args {
		c.checkExpression(arg, env, []types.Type{winner.params[i]})
	}
	v.Resolved = winner.decl.Signature()
	return returnsToSemantic(winner.returns)
}

// fallbackInvocationArgs checks every argument against Any so that
// checking still assigns every expression a concrete type, cascading the
// already-reported error minimally (spec §7).
func (c *Checker) fallbackInvocationArgs(v *ast.DirectInvocationExpr, env *TypingEnvironment) types.SemanticType {
	for _, arg := range v.Args {
		c.checkExpression(arg, env, []types.Type{types.AnyType})
	}
	return types.ToSemantic(types.AnyType)
}

func returnsToSemantic(returns []types.Type) types.SemanticType {
	if len(returns) == 1 {
		return types.ToSemantic(returns[0])
	}
	sems := make([]types.SemanticType, len(returns))
	for i, r := range returns {
		sems[i] = types.ToSemantic(r)
	}
	return types.NewSemIntersection(sems...)
}

// pickBestCandidate implements the overload competition (spec §4.4.4):
// binding B beats B' if every one of B's parameter types is a subtype of
// the corresponding parameter of B' and at least one is a proper subtype
// (more specific wins); if no unique best binding exists, the call is
// ambiguous.
func (c *Checker) pickBestCandidate(candidates []candidateSignature) (candidateSignature, bool, error) {
	best := candidates[0]
	for _, cand := range candidates[1:] {
		beats, err := c.signatureBeats(cand, best)
		if err != nil {
			return candidateSignature{}, false, err
		}
		if beats {
			best = cand
		}
	}
	for _, cand := range candidates {
		if sameSignature(cand, best) {
			continue
		}
		bestBeatsCand, err := c.signatureBeats(best, cand)
		if err != nil {
			return candidateSignature{}, false, err
		}
		if !bestBeatsCand {
			return candidateSignature{}, true, nil
		}
	}
	return best, false, nil
}

func (c *Checker) signatureBeats(a, b candidateSignature) (bool, error) {
	strictlyBetter := false
	for i := range a.params {
		aLE, err := c.Engine.IsSubtypeSyntactic(b.params[i], a.params[i]) // a.params[i] <: b.params[i]
		if err != nil {
			return false, err
		}
		if !aLE {
			return false, nil
		}
		equal, err := c.Engine.IsSubtypeSyntactic(a.params[i], b.params[i])
		if err != nil {
			return false, err
		}
		if !equal {
			strictlyBetter = true
		}
	}
	return strictlyBetter, nil
}

func sameSignature(a, b candidateSignature) bool {
	return a.decl == b.decl
}

// lifetimeUniverse collects every lifetime name appearing in a reference
// among the inferred argument types (spec §4.4.4: "the set of lifetimes
// appearing in the arguments"), always including the universal lifetime.
func lifetimeUniverse(argTypes []types.SemanticType) []types.Name {
	seen := map[types.Name]bool{types.Star: true, types.This: true}
	for _, t := range argTypes {
		collectLifetimesSemantic(t, seen)
	}
	out := make([]types.Name, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	return out
}

func collectLifetimesSemantic(t types.SemanticType, seen map[types.Name]bool) {
	switch v := t.(type) {
	case *types.Leaf:
		collectLifetimesSyntactic(v.Syntactic, seen)
	case *types.SemUnion:
		for _, b := range v.Bounds {
			collectLifetimesSemantic(b, seen)
		}
	case *types.SemIntersection:
		for _, b := range v.Bounds {
			collectLifetimesSemantic(b, seen)
		}
	case *types.SemDifference:
		collectLifetimesSemantic(v.Lhs, seen)
		collectLifetimesSemantic(v.Rhs, seen)
	}
}

func collectLifetimesSyntactic(t types.Type, seen map[types.Name]bool) {
	switch v := t.(type) {
	case *types.Reference:
		seen[v.EffectiveLifetime()] = true
		collectLifetimesSyntactic(v.Element, seen)
	case *types.Array:
		collectLifetimesSyntactic(v.Element, seen)
	case *types.Record:
		for _, f := range v.Fields {
			collectLifetimesSyntactic(f.Type, seen)
		}
	case *types.Union:
		for _, b := range v.Bounds {
			collectLifetimesSyntactic(b, seen)
		}
	case *types.Intersection:
		for _, b := range v.Bounds {
			collectLifetimesSyntactic(b, seen)
		}
	case *types.Difference:
		collectLifetimesSyntactic(v.Lhs, seen)
		collectLifetimesSyntactic(v.Rhs, seen)
	case *types.Negation:
		collectLifetimesSyntactic(v.Element, seen)
	}
}

// substituteLifetimes builds one candidateSignature per lifetime
// substitution to try for decl (spec §4.4.4): if the call site supplies
// exactly one explicit lifetime argument per declared lifetime parameter,
// that single substitution is used; otherwise every combination of decl's
// declared lifetime
// parameters drawn from universe is enumerated (Cartesian product).
func (c *Checker) substituteLifetimes(decl *ast.CallableDecl, explicit []types.Name, universe []types.Name) []candidateSignature {
	if len(decl.DeclaredLifetimes) == 0 {
		return []candidateSignature{{decl: decl, params: decl.ParamTypes(), returns: decl.Returns}}
	}
	if len(explicit) == len(decl.DeclaredLifetimes) {
		subst := make(map[types.Name]types.Name, len(explicit))
		for i, lt := range decl.DeclaredLifetimes {
			subst[lt] = explicit[i]
		}
		return []candidateSignature{applySubstitution(decl, subst)}
	}

	var out []candidateSignature
	var enumerate func(i int, subst map[types.Name]types.Name)
	enumerate = func(i int, subst map[types.Name]types.Name) {
		if i == len(decl.DeclaredLifetimes) {
			next := make(map[types.Name]types.Name, len(subst))
			for k, v := range subst {
				next[k] = v
			}
			out = append(out, applySubstitution(decl, next))
			return
		}
		for _, candidate := range universe {
			subst[decl.DeclaredLifetimes[i]] = candidate
			enumerate(i+1, subst)
		}
	}
	enumerate(0, map[types.Name]types.Name{})
	return out
}

func applySubstitution(decl *ast.CallableDecl, subst map[types.Name]types.Name) candidateSignature {
	params := make([]types.Type, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = substituteType(p.DeclaredType, subst)
	}
	returns := make([]types.Type, len(decl.Returns))
	for i, r := range decl.Returns {
		returns[i] = substituteType(r, subst)
	}
	return candidateSignature{decl: decl, params: params, returns: returns}
}

// substituteType rewrites every Reference lifetime matching a key of
// subst to its mapped value, recursing through compound shapes.
func substituteType(t types.Type, subst map[types.Name]types.Name) types.Type {
	switch v := t.(type) {
	case *types.Reference:
		lt := v.EffectiveLifetime()
		if mapped, ok := subst[lt]; ok {
			lt = mapped
		}
		return types.NewReference(substituteType(v.Element, subst), lt)
	case *types.Array:
		return types.NewArray(substituteType(v.Element, subst))
	case *types.Record:
		fields := make([]types.Field, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.Field{Name: f.Name, Type: substituteType(f.Type, subst)}
		}
		rec, _ := types.NewRecord(v.OpenRecord, fields)
		return rec
	case *types.Union:
		bounds := make([]types.Type, len(v.Bounds))
		for i, b := range v.Bounds {
			bounds[i] = substituteType(b, subst)
		}
		return types.NewUnion(bounds...)
	case *types.Intersection:
		bounds := make([]types.Type, len(v.Bounds))
		for i, b := range v.Bounds {
			bounds[i] = substituteType(b, subst)
		}
		return types.NewIntersection(bounds...)
	default:
		return t
	}
}
