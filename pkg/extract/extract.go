// Package extract implements the Type Extractors (C4): the readable,
// writeable, and representation projections over compound types (spec
// §4.3). All three share one skeleton: normalize to DNF, combine each
// conjunct's positive atoms into a shape-specific candidate, subtract its
// negative atoms, then merge the per-conjunct candidates across the
// disjunct with a mode-specific union.
package extract

import (
	"typecheck/pkg/decision"
	"typecheck/pkg/dnf"
	"typecheck/pkg/types"
)

// Mode selects which of the two directional extractors to run (spec §4.3).
// Representation is handled separately (RepresentationOf) since it is not
// parameterized by a target shape.
type Mode int

const (
	Readable Mode = iota
	Writeable
)

// Shape is the target compound kind the flow typer is asking for: the
// effective array/record/reference/callable type of an expression (spec
// §4.4, "asks the extractors for effective ... type").
type Shape int

const (
	ShapeArray Shape = iota
	ShapeRecord
	ShapeReference
	ShapeCallable
)

// Extract runs the shared skeleton for the given mode and shape. Returns
// ok=false ("no extraction") when no conjunct of t's DNF yields a
// candidate of the requested shape (spec §4.3's Int-has-no-readable-array
// example).
func Extract(t types.SemanticType, mode Mode, shape Shape, engine *decision.Engine) (types.Type, bool, error) {
	d, err := dnf.ToDNF(t, engine.Resolver)
	if err != nil {
		return nil, false, err
	}

	ops := opsFor(shape)
	var candidates []types.Type
	for _, c := range d {
		empty, err := engine.ConjunctEmpty(c)
		if err != nil {
			return nil, false, err
		}
		if empty {
			continue
		}

		cand, ok, err := ops.combine(engine, c.Positives)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}

		for _, neg := range c.Negatives {
			cand, ok, err = subtractDefault(engine, cand, neg)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				break
			}
		}
		if !ok {
			continue
		}
		candidates = append(candidates, cand)
	}

	if len(candidates) == 0 {
		return nil, false, nil
	}
	result, err := ops.union(engine, candidates, mode)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// subtractDefault implements the shared "subtract" step conservatively:
// a negative atom only narrows the candidate to nothing when it provably
// swallows it whole; otherwise the candidate is kept as-is. Exact
// shape-aware negative subtraction (e.g. punching a field out of a record)
// is not attempted — the same conservative stance spec §4.2 takes for
// callable intersection emptiness.
func subtractDefault(engine *decision.Engine, candidate, negative types.Type) (types.Type, bool, error) {
	empty, err := engine.IsEmptySyntactic(types.NewDifference(candidate, negative))
	if err != nil {
		return nil, false, err
	}
	if empty {
		return nil, false, nil
	}
	return candidate, true, nil
}

// shapeOps bundles the per-shape AND-combination (within one conjunct) and
// per-mode union (across conjuncts) operations.
type shapeOps struct {
	combine func(engine *decision.Engine, positives []types.Type) (types.Type, bool, error)
	union   func(engine *decision.Engine, candidates []types.Type, mode Mode) (types.Type, error)
}

func opsFor(shape Shape) shapeOps {
	switch shape {
	case ShapeArray:
		return shapeOps{combine: combineArray, union: unionArray}
	case ShapeRecord:
		return shapeOps{combine: combineRecord, union: unionRecord}
	case ShapeReference:
		return shapeOps{combine: combineReference, union: unionReference}
	case ShapeCallable:
		return shapeOps{combine: combineCallable, union: unionCallable}
	default:
		panic("extract: unknown shape")
	}
}
