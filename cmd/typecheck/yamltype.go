package main

import (
	"fmt"

	"typecheck/pkg/types"

	"gopkg.in/yaml.v3"
)

// yamlType is the fixture format's stand-in for a parsed type annotation
// (cmd/typecheck has no real parser per spec §1; a YAML tree plays that
// role for this driver the way funvibe-funxy's builtins_yaml.go decodes a
// YAML document into its runtime's own value tree).
type yamlType struct {
	Kind string      `yaml:"kind"`
	Name string      `yaml:"name"`
	Of   []yamlType  `yaml:"of"`
	Elem *yamlType   `yaml:"elem"`
	Lhs  *yamlType   `yaml:"lhs"`
	Rhs  *yamlType   `yaml:"rhs"`
	Open bool        `yaml:"open"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name string   `yaml:"name"`
	Type yamlType `yaml:"type"`
}

func parseType(raw yaml.Node) (types.Type, error) {
	var y yamlType
	if err := raw.Decode(&y); err != nil {
		return nil, fmt.Errorf("decoding type fixture: %w", err)
	}
	return y.resolve()
}

func (y yamlType) resolve() (types.Type, error) {
	switch y.Kind {
	case "void":
		return types.VoidType, nil
	case "any":
		return types.AnyType, nil
	case "null":
		return types.NullType, nil
	case "bool":
		return types.BoolType, nil
	case "byte":
		return types.ByteType, nil
	case "int":
		return types.IntType, nil
	case "nominal":
		return types.NewNominal(types.Name(y.Name)), nil
	case "union", "intersection":
		bounds := make([]types.Type, len(y.Of))
		for i, o := range y.Of {
			t, err := o.resolve()
			if err != nil {
				return nil, err
			}
			bounds[i] = t
		}
		if y.Kind == "union" {
			return types.NewUnion(bounds...), nil
		}
		return types.NewIntersection(bounds...), nil
	case "negation":
		if y.Elem == nil {
			return nil, fmt.Errorf("negation requires elem")
		}
		t, err := y.Elem.resolve()
		if err != nil {
			return nil, err
		}
		return types.NewNegation(t), nil
	case "difference":
		if y.Lhs == nil || y.Rhs == nil {
			return nil, fmt.Errorf("difference requires lhs and rhs")
		}
		lhs, err := y.Lhs.resolve()
		if err != nil {
			return nil, err
		}
		rhs, err := y.Rhs.resolve()
		if err != nil {
			return nil, err
		}
		return types.NewDifference(lhs, rhs), nil
	case "array":
		if y.Elem == nil {
			return nil, fmt.Errorf("array requires elem")
		}
		t, err := y.Elem.resolve()
		if err != nil {
			return nil, err
		}
		return types.NewArray(t), nil
	case "reference":
		if y.Elem == nil {
			return nil, fmt.Errorf("reference requires elem")
		}
		t, err := y.Elem.resolve()
		if err != nil {
			return nil, err
		}
		return types.NewReference(t, types.Name(y.Name)), nil
	case "record":
		fields := make([]types.Field, len(y.Fields))
		for i, f := range y.Fields {
			t, err := f.Type.resolve()
			if err != nil {
				return nil, err
			}
			fields[i] = types.Field{Name: types.Name(f.Name), Type: t}
		}
		rec, err := types.NewRecord(y.Open, fields)
		if err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unrecognized type fixture kind %q", y.Kind)
	}
}
