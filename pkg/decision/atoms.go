package decision

import "typecheck/pkg/types"

// atomKind classifies an atom for disjointness checks (spec §4.2: "disjoint
// atom kinds ... intersect to empty").
type atomKind int

const (
	kindVoid atomKind = iota
	kindAny
	kindNull
	kindBool
	kindByte
	kindInt
	kindArray
	kindReference
	kindRecord
	kindFunction
	kindMethod
	kindProperty
	kindNominalOpaque // a Nominal atom surviving a cycle-break in toDNF
	kindUnknown
)

func atomKindOf(t types.Type) atomKind {
	switch v := t.(type) {
	case *types.Atom:
		switch v {
		case types.VoidType:
			return kindVoid
		case types.AnyType:
			return kindAny
		case types.NullType:
			return kindNull
		case types.BoolType:
			return kindBool
		case types.ByteType:
			return kindByte
		case types.IntType:
			return kindInt
		}
		return kindUnknown
	case *types.Array:
		return kindArray
	case *types.Reference:
		return kindReference
	case *types.Record:
		return kindRecord
	case *types.Function:
		return kindFunction
	case *types.Method:
		return kindMethod
	case *types.Property:
		return kindProperty
	case *types.Nominal:
		return kindNominalOpaque
	default:
		return kindUnknown
	}
}

func isCallableKind(k atomKind) bool {
	return k == kindFunction || k == kindMethod || k == kindProperty
}
