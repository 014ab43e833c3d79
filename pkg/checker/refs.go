package checker

import (
	"fmt"

	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/extract"
	"typecheck/pkg/types"
)

// inferDereference requires an effective (readable) reference type;
// result is the referenced element's type (spec §4.4.3).
func (c *Checker) inferDereference(v *ast.DereferenceExpr, env *TypingEnvironment) types.SemanticType {
	base := c.checkExpression(v.Ref, env, []types.Type{types.AnyType})

	ref, ok, err := c.effective(base, extract.Readable, extract.ShapeReference)
	if err != nil {
		c.internalFailure("extracting readable reference", v.Pos(), err)
		return types.ToSemantic(types.AnyType)
	}
	if !ok {
		c.Reporter.TypeError(cerrors.KindSubtype, fmt.Sprintf("%s is not a reference type", base), v.Pos())
		return types.ToSemantic(types.AnyType)
	}
	return types.ToSemantic(ref.(*types.Reference).Element)
}

// inferNew checks the initial value against Any and constructs a
// Reference over its concrete type, scoped to the declared lifetime (spec
// §3.1, §4.4.3).
func (c *Checker) inferNew(v *ast.NewExpr, env *TypingEnvironment) types.SemanticType {
	c.checkExpression(v.Value, env, []types.Type{types.AnyType})
	return types.ToSemantic(types.NewReference(v.Value.ConcreteType(), v.Lifetime))
}
