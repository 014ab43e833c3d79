package main

import (
	"fmt"
	"os"

	"typecheck/pkg/ast"
	"typecheck/pkg/source"
	"typecheck/pkg/types"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the driver's stand-in "source unit" format: a closed set
// of type and static-variable declarations expressed in YAML rather than
// parsed from program text (spec §1 puts parsing out of scope; funvibe-funxy's
// builtins_yaml.go and sunholo-data-ailang's eval_harness/spec.go both
// decode a YAML document into the shape their own evaluator consumes).
type fixtureFile struct {
	Types   []typeFixture   `yaml:"types"`
	Statics []staticFixture `yaml:"statics"`
}

type typeFixture struct {
	Name yaml.Node `yaml:"name"`
	Body yaml.Node `yaml:"body"`
}

type staticFixture struct {
	Name        string     `yaml:"name"`
	Type        yaml.Node  `yaml:"type"`
	Initializer *constFixture `yaml:"initializer"`
}

// constFixture is the only expression shape the fixture format supports:
// a literal constant, enough to exercise a static variable's initializer
// check (spec §4.4: "Static variable") without a general expression
// grammar.
type constFixture struct {
	Literal interface{} `yaml:"literal"`
	Type    yaml.Node   `yaml:"type"`
}

func loadFixture(path string) (*fixtureFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return &f, nil
}

// declarations turns the fixture into the ast.Declaration list
// checker.Check expects (spec §6.2).
func (f *fixtureFile) declarations() ([]ast.Declaration, error) {
	var decls []ast.Declaration
	for _, tf := range f.Types {
		var name string
		if err := tf.Name.Decode(&name); err != nil {
			return nil, fmt.Errorf("type fixture name: %w", err)
		}
		body, err := parseType(tf.Body)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", name, err)
		}
		decls = append(decls, &ast.TypeDecl{Position: source.Zero, Name: types.Name(name), Body: body})
	}
	for _, sf := range f.Statics {
		declaredType, err := parseType(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("static %q: %w", sf.Name, err)
		}
		decl := &ast.StaticVarDecl{Position: source.Zero, Name: types.Name(sf.Name), DeclaredType: declaredType}
		if sf.Initializer != nil {
			litType, err := parseType(sf.Initializer.Type)
			if err != nil {
				return nil, fmt.Errorf("static %q initializer: %w", sf.Name, err)
			}
			decl.Initializer = &ast.ConstantExpr{Literal: sf.Initializer.Literal, Type: litType}
		}
		decls = append(decls, decl)
	}
	return decls, nil
}
