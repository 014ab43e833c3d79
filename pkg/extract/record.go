package extract

import (
	"typecheck/pkg/decision"
	"typecheck/pkg/types"
)

// combineRecord ANDs the record-shaped positives of one conjunct using the
// decision engine's record-intersection rule (spec §4.2): required fields
// must agree in kind, openness composes by conjunction.
func combineRecord(engine *decision.Engine, positives []types.Type) (types.Type, bool, error) {
	var recs []*types.Record
	sawAny := false
	for _, p := range positives {
		if p == types.AnyType {
			sawAny = true
			continue
		}
		r, ok := p.(*types.Record)
		if !ok {
			return nil, false, nil
		}
		recs = append(recs, r)
	}
	if len(recs) == 0 {
		if sawAny {
			empty, _ := types.NewRecord(true, nil)
			return empty, true, nil
		}
		return nil, false, nil
	}
	acc := recs[0]
	for _, r := range recs[1:] {
		combined, ok, err := engine.IntersectRecords(acc, r)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		acc = combined.(*types.Record)
	}
	return acc, true, nil
}

// unionRecord merges the per-conjunct record candidates (spec §4.3):
// readable keeps only fields common to every candidate, union-typed, open
// if any candidate is open or the field sets differ; writeable keeps only
// fields common to every candidate, intersection-typed, open only if every
// candidate is open.
func unionRecord(_ *decision.Engine, candidates []types.Type, mode Mode) (types.Type, error) {
	recs := make([]*types.Record, len(candidates))
	for i, c := range candidates {
		recs[i] = c.(*types.Record)
	}
	if len(recs) == 1 {
		return recs[0], nil
	}

	common := map[types.Name]bool{}
	for _, f := range recs[0].Fields {
		common[f.Name] = true
	}
	fieldSetsDiffer := false
	anyOpen, allOpen := false, true
	for _, r := range recs {
		if r.OpenRecord {
			anyOpen = true
		} else {
			allOpen = false
		}
		names := map[types.Name]bool{}
		for _, f := range r.Fields {
			names[f.Name] = true
		}
		for name := range common {
			if !names[name] {
				delete(common, name)
				fieldSetsDiffer = true
			}
		}
		if len(names) != len(recs[0].Fields) {
			fieldSetsDiffer = true
		}
	}

	var fields []types.Field
	for name := range common {
		var combined types.Type
		for _, r := range recs {
			ft, _ := r.Field(name)
			if combined == nil {
				combined = ft
			} else if mode == Readable {
				combined = types.NewUnion(combined, ft)
			} else {
				combined = types.NewIntersection(combined, ft)
			}
		}
		fields = append(fields, types.Field{Name: name, Type: combined})
	}

	open := allOpen
	if mode == Readable {
		open = anyOpen || fieldSetsDiffer
	}
	rec, err := types.NewRecord(open, fields)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
