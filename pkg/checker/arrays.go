package checker

import (
	"fmt"

	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/extract"
	"typecheck/pkg/types"
)

// expectedArrayElement derives the element type(s) to propagate to an
// array initialiser/generator's operands from the caller's expected array
// types, falling back to Any when nothing more specific is known (spec
// §4.4.3: "propagate expected array types").
func expectedArrayElement(expected []types.Type) []types.Type {
	var elems []types.Type
	for _, e := range expected {
		if arr, ok := e.(*types.Array); ok {
			elems = append(elems, arr.Element)
		}
	}
	if len(elems) == 0 {
		return []types.Type{types.AnyType}
	}
	return elems
}

// inferArrayInit infers the element type as the union of every operand's
// type, duplicates eliminated by structural equality before the union is
// built (spec §4.4.3).
func (c *Checker) inferArrayInit(v *ast.ArrayInitExpr, env *TypingEnvironment, expected []types.Type) types.SemanticType {
	if len(v.Elements) == 0 {
		return types.ToSemantic(types.NewArray(types.VoidType))
	}
	elemExpected := expectedArrayElement(expected)
	var elemTypes []types.Type
	for _, el := range v.Elements {
		c.checkExpression(el, env, elemExpected)
		elType := el.ConcreteType()
		duplicate := false
		for _, seen := range elemTypes {
			if seen.Equals(elType) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			elemTypes = append(elemTypes, elType)
		}
	}
	elem := elemTypes[0]
	if len(elemTypes) > 1 {
		elem = types.NewUnion(elemTypes...)
	}
	return types.ToSemantic(types.NewArray(elem))
}

// inferArrayGenerator checks Size against Int and Fill against the
// expected element types (Any when none are expected), producing
// Array(Fill's type) (spec §3.1's array-by-generator form).
func (c *Checker) inferArrayGenerator(v *ast.ArrayGeneratorExpr, env *TypingEnvironment, expected []types.Type) types.SemanticType {
	c.checkExpression(v.Size, env, []types.Type{types.IntType})
	c.checkExpression(v.Fill, env, expectedArrayElement(expected))
	return types.ToSemantic(types.NewArray(v.Fill.ConcreteType()))
}

// inferArrayAccess requires an effective (readable) array type for the
// base; the result is that array's element type (spec §4.4.3).
func (c *Checker) inferArrayAccess(v *ast.ArrayAccessExpr, env *TypingEnvironment) types.SemanticType {
	base := c.checkExpression(v.Array, env, []types.Type{types.AnyType})
	c.checkExpression(v.Index, env, []types.Type{types.IntType})

	arr, ok, err := c.effective(base, extract.Readable, extract.ShapeArray)
	if err != nil {
		c.internalFailure("extracting readable array", v.Pos(), err)
		return types.ToSemantic(types.AnyType)
	}
	if !ok {
		c.Reporter.TypeError(cerrors.KindSubtype, fmt.Sprintf("%s is not an array type", base), v.Pos())
		return types.ToSemantic(types.AnyType)
	}
	return types.ToSemantic(arr.(*types.Array).Element)
}

// inferArrayUpdate requires the new element to be a subtype of the
// effective (writeable) element type; result is the same array type
// (functional update, spec §4.4.3).
func (c *Checker) inferArrayUpdate(v *ast.ArrayUpdateExpr, env *TypingEnvironment) types.SemanticType {
	base := c.checkExpression(v.Array, env, []types.Type{types.AnyType})
	c.checkExpression(v.Index, env, []types.Type{types.IntType})

	arr, ok, err := c.effective(base, extract.Writeable, extract.ShapeArray)
	if err != nil {
		c.internalFailure("extracting writeable array", v.Pos(), err)
		return types.ToSemantic(types.AnyType)
	}
	if !ok {
		c.Reporter.TypeError(cerrors.KindSubtype, fmt.Sprintf("%s is not an array type", base), v.Pos())
		return types.ToSemantic(types.AnyType)
	}
	elem := arr.(*types.Array).Element
	c.checkExpression(v.Value, env, []types.Type{elem})
	return base
}
