package decision

import (
	"typecheck/pkg/dnf"
	"typecheck/pkg/types"
)

// conjunctEmpty implements spec §4.2: "A conjunct (P, N) is empty iff the
// intersection of positives is empty, or some negative contains the
// positive intersection."
func (e *Engine) conjunctEmpty(c dnf.Conjunct) (bool, error) {
	pos, nonEmpty, err := e.intersectPositives(c.Positives)
	if err != nil {
		return false, err
	}
	if !nonEmpty {
		return true, nil
	}
	for _, neg := range c.Negatives {
		contains, err := e.atomContains(neg, pos)
		if err != nil {
			return false, err
		}
		if contains {
			return true, nil
		}
	}
	return false, nil
}

// intersectPositives folds the positive atoms of a conjunct pairwise,
// reporting whether the result is provably non-empty and, if so, a
// representative type for that intersection (used by the negative-
// containment check above).
func (e *Engine) intersectPositives(positives []types.Type) (types.Type, bool, error) {
	if len(positives) == 0 {
		// ⋂ of nothing is Any (spec §3.3 universal conjunct).
		return types.AnyType, true, nil
	}
	acc := positives[0]
	if acc == types.VoidType {
		return nil, false, nil
	}
	for _, next := range positives[1:] {
		combined, ok, err := e.intersectAtoms(acc, next)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		acc = combined
	}
	return acc, true, nil
}

// intersectAtoms combines two atoms, reporting whether the combination is
// provably non-empty and, when so, a representative type for it.
func (e *Engine) intersectAtoms(a, b types.Type) (types.Type, bool, error) {
	if a == types.VoidType || b == types.VoidType {
		return nil, false, nil
	}
	if a == types.AnyType {
		return b, true, nil
	}
	if b == types.AnyType {
		return a, true, nil
	}

	ka, kb := atomKindOf(a), atomKindOf(b)
	if ka != kb {
		return nil, false, nil
	}

	switch ka {
	case kindNull, kindBool, kindByte, kindInt:
		// Singleton atomic kinds: always equal to themselves once the kind
		// matches, so the intersection is exactly that atom.
		return a, true, nil

	case kindArray:
		// Convention (spec §9 open question): every array type, including
		// Array(Void), is non-empty because it admits the zero-length
		// array regardless of the element type. Array intersection is
		// therefore never proven empty by this rule; the element type of
		// the combination narrows to the intersection of elements.
		av, bv := a.(*types.Array), b.(*types.Array)
		return types.NewArray(types.NewIntersection(av.Element, bv.Element)), true, nil

	case kindReference:
		av, bv := a.(*types.Reference), b.(*types.Reference)
		// Invariant in the element: requires a = b up to subtype (spec §4.2).
		sub1, err := e.IsSubtypeSyntactic(av.Element, bv.Element)
		if err != nil {
			return nil, false, err
		}
		sub2, err := e.IsSubtypeSyntactic(bv.Element, av.Element)
		if err != nil {
			return nil, false, err
		}
		if !sub1 || !sub2 {
			return nil, false, nil
		}
		if av.EffectiveLifetime() != bv.EffectiveLifetime() {
			return nil, false, nil
		}
		return av, true, nil

	case kindRecord:
		return e.intersectRecords(a.(*types.Record), b.(*types.Record))

	case kindFunction, kindMethod, kindProperty:
		return e.intersectCallables(a, b)

	case kindNominalOpaque:
		if a.Equals(b) {
			return a, true, nil
		}
		// Conservative: two distinct opaque (cycle-broken) nominal atoms
		// are not provably disjoint; treat the combination as non-empty.
		return a, true, nil

	default:
		return nil, false, nil
	}
}

// intersectRecords implements spec §4.2's record intersection rule: fields
// matched by name, empty if a required (closed) field disagrees in kind,
// otherwise per-field types intersected; openness composes by conjunction.
func (e *Engine) intersectRecords(r1, r2 *types.Record) (types.Type, bool, error) {
	names := make(map[types.Name]bool)
	m1, m2 := r1.FieldMap(), r2.FieldMap()
	for n := range m1 {
		names[n] = true
	}
	for n := range m2 {
		names[n] = true
	}

	var fields []types.Field
	for n := range names {
		f1, in1 := m1[n]
		f2, in2 := m2[n]
		switch {
		case in1 && in2:
			combinedEmpty, err := e.IsEmptySyntactic(types.NewIntersection(f1, f2))
			if err != nil {
				return nil, false, err
			}
			if combinedEmpty {
				return nil, false, nil
			}
			fields = append(fields, types.Field{Name: n, Type: types.NewIntersection(f1, f2)})
		case in1 && !in2:
			if !r2.OpenRecord {
				return nil, false, nil
			}
			fields = append(fields, types.Field{Name: n, Type: f1})
		case !in1 && in2:
			if !r1.OpenRecord {
				return nil, false, nil
			}
			fields = append(fields, types.Field{Name: n, Type: f2})
		}
	}
	rec, err := types.NewRecord(r1.OpenRecord && r2.OpenRecord, fields)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// intersectCallables treats callable intersection conservatively: emptiness
// only when the shapes (kind or arity) disagree (spec §4.2).
func (e *Engine) intersectCallables(a, b types.Type) (types.Type, bool, error) {
	pa, ra := callableShape(a)
	pb, rb := callableShape(b)
	if len(pa) != len(pb) || len(ra) != len(rb) {
		return nil, false, nil
	}
	return a, true, nil
}

func callableShape(t types.Type) (params, returns []types.Type) {
	switch v := t.(type) {
	case *types.Function:
		return v.Params, v.Returns
	case *types.Method:
		return v.Params, v.Returns
	case *types.Property:
		return v.Params, v.Returns
	}
	return nil, nil
}

// atomContains reports whether every value of small is a value of big, for
// same-kind atoms (used to test whether a negative "contains" the positive
// intersection in conjunctEmpty).
func (e *Engine) atomContains(big, small types.Type) (bool, error) {
	if big == types.AnyType {
		return true, nil
	}
	if small == types.AnyType {
		return big == types.AnyType, nil
	}
	if big == types.VoidType {
		return small == types.VoidType, nil
	}

	ka, kb := atomKindOf(big), atomKindOf(small)
	if ka != kb {
		return false, nil
	}

	switch ka {
	case kindNull, kindBool, kindByte, kindInt:
		return big.Equals(small), nil

	case kindArray:
		bv, sv := big.(*types.Array), small.(*types.Array)
		return e.IsSubtypeSyntactic(bv.Element, sv.Element)

	case kindReference:
		bv, sv := big.(*types.Reference), small.(*types.Reference)
		sub1, err := e.IsSubtypeSyntactic(bv.Element, sv.Element)
		if err != nil {
			return false, err
		}
		sub2, err := e.IsSubtypeSyntactic(sv.Element, bv.Element)
		if err != nil {
			return false, err
		}
		if !sub1 || !sub2 {
			return false, nil
		}
		return e.Lifetimes.IsWithin(sv.EffectiveLifetime(), bv.EffectiveLifetime()), nil

	case kindRecord:
		return e.recordContains(big.(*types.Record), small.(*types.Record))

	case kindFunction, kindMethod, kindProperty:
		return e.callableContains(big, small)

	case kindNominalOpaque:
		return big.Equals(small), nil

	default:
		return false, nil
	}
}

// recordContains implements width/depth record subtyping: small must
// provide every field big requires (covariant field types); if big is
// closed, small must not admit fields outside big's set.
func (e *Engine) recordContains(big, small *types.Record) (bool, error) {
	bm := big.FieldMap()
	sm := small.FieldMap()
	for name, bt := range bm {
		st, ok := sm[name]
		if !ok {
			return false, nil
		}
		sub, err := e.IsSubtypeSyntactic(bt, st)
		if err != nil {
			return false, err
		}
		if !sub {
			return false, nil
		}
	}
	if !big.OpenRecord {
		if small.OpenRecord {
			return false, nil
		}
		for name := range sm {
			if _, ok := bm[name]; !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// callableContains implements standard arrow subtyping: contravariant
// parameters, covariant returns, matching arity (spec §4.2's conservative
// treatment extended here for the containment direction subtyping needs).
func (e *Engine) callableContains(big, small types.Type) (bool, error) {
	bp, br := callableShape(big)
	sp, sr := callableShape(small)
	if len(bp) != len(sp) || len(br) != len(sr) {
		return false, nil
	}
	for i := range bp {
		// Parameters are contravariant: big's param must be a subtype of small's.
		sub, err := e.IsSubtypeSyntactic(sp[i], bp[i])
		if err != nil {
			return false, err
		}
		if !sub {
			return false, nil
		}
	}
	for i := range br {
		sub, err := e.IsSubtypeSyntactic(br[i], sr[i])
		if err != nil {
			return false, err
		}
		if !sub {
			return false, nil
		}
	}
	return true, nil
}
