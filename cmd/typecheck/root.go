package main

import (
	"fmt"
	"os"

	"typecheck/pkg/ast"
	"typecheck/pkg/checker"
	"typecheck/pkg/decision"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/resolve"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	errColor    = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen)
	headerColor = color.New(color.FgCyan, color.Bold)
)

// newRootCmd builds the driver's command tree: `check` runs the Flow
// Typer (C5) end to end over a fixture, `explain` asks the Decision
// Engine (C3) directly about two type fragments, the way the teacher's
// cmd/paserati wraps one flag-parsed entry point around several
// subcommand-shaped run modes.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "typecheck",
		Short: "Flow-sensitive structural type checker driver",
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newExplainCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FIXTURE",
		Short: "Type-check a YAML fixture's declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

func runCheck(path string) error {
	f, err := loadFixture(path)
	if err != nil {
		return err
	}
	decls, err := f.declarations()
	if err != nil {
		return err
	}

	mapResolver := resolve.NewMapResolver(decls)
	lifetimes := resolve.NewStaticLifetimes()
	reporter := cerrors.NewCollectingReporter()
	c := checker.New(mapResolver, mapResolver, lifetimes, reporter, checker.DefaultConfig)

	unit := ast.SourceUnit{Name: path, Declarations: decls}
	if err := c.CheckAll([]ast.SourceUnit{unit}); err != nil {
		warnColor.Println("internal failures:")
		fmt.Println(err)
	}

	if !reporter.HasErrors() {
		okColor.Printf("%s: no diagnostics\n", path)
		return nil
	}

	for _, e := range reporter.Errors {
		printDiagnostic(e)
	}
	return fmt.Errorf("%d diagnostic(s)", len(reporter.Errors))
}

func printDiagnostic(e cerrors.CheckerError) {
	if e.Kind() == cerrors.KindInternal {
		warnColor.Printf("%s [%s] %s\n", e.Pos(), e.Kind(), e.Message())
		return
	}
	errColor.Printf("%s [%s] %s\n", e.Pos(), e.Kind(), e.Message())
}

// explainDoc is the `explain` subcommand's input: two type fragments and
// the relation to report on.
type explainDoc struct {
	Relation string    `yaml:"relation"`
	Lhs      yaml.Node `yaml:"lhs"`
	Rhs      yaml.Node `yaml:"rhs"`
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain FIXTURE",
		Short: "Report the subtype/emptiness relation between two types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(args[0])
		},
	}
}

func runExplain(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	var doc explainDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	lhs, err := parseType(doc.Lhs)
	if err != nil {
		return fmt.Errorf("lhs: %w", err)
	}

	resolver := resolve.NewMapResolver(nil)
	engine := decision.NewEngine(resolver, resolve.NewStaticLifetimes())

	switch doc.Relation {
	case "empty":
		empty, err := engine.IsEmptySyntactic(lhs)
		if err != nil {
			return err
		}
		printBool("empty", lhs.String(), "", empty)
		return nil
	case "subtype":
		rhs, err := parseType(doc.Rhs)
		if err != nil {
			return fmt.Errorf("rhs: %w", err)
		}
		sub, err := engine.IsSubtypeSyntactic(lhs, rhs)
		if err != nil {
			return err
		}
		printBool("subtype", lhs.String(), rhs.String(), sub)
		return nil
	default:
		return fmt.Errorf("unrecognized relation %q (want \"empty\" or \"subtype\")", doc.Relation)
	}
}

func printBool(relation, lhs, rhs string, v bool) {
	headerColor.Printf("%s(%s", relation, lhs)
	if rhs != "" {
		headerColor.Printf(", %s", rhs)
	}
	headerColor.Print(") = ")
	if v {
		okColor.Println("true")
	} else {
		errColor.Println("false")
	}
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
