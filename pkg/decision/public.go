package decision

import (
	"typecheck/pkg/dnf"
	"typecheck/pkg/types"
)

// ConjunctEmpty exposes conjunctEmpty to sibling packages (pkg/extract)
// that need to skip conjuncts the engine already proves empty (spec §4.3:
// "Conjuncts the engine proves empty are skipped").
func (e *Engine) ConjunctEmpty(c dnf.Conjunct) (bool, error) {
	return e.conjunctEmpty(c)
}

// IntersectRecords exposes the record-intersection rule (spec §4.2) for
// the extractors' AND-combination of simultaneous positive record atoms.
func (e *Engine) IntersectRecords(a, b *types.Record) (types.Type, bool, error) {
	return e.intersectRecords(a, b)
}
