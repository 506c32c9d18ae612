// Package enumvalidator reports assignments of raw string literals to struct
// fields whose type is a string enum (a named string type with declared
// constants). Writing the literal bypasses the constant set, so typos like
// "sucess" survive until runtime.
package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

var Analyzer = &analysis.Analyzer{
	Name: "enumvalidator",
	Doc:  "reports string literals assigned to enum-typed struct fields",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			assign, ok := n.(*ast.AssignStmt)
			if !ok {
				return true
			}
			checkAssign(pass, assign)
			return true
		})
	}
	return nil, nil
}

func checkAssign(pass *analysis.Pass, assign *ast.AssignStmt) {
	for i, lhs := range assign.Lhs {
		if i >= len(assign.Rhs) {
			return
		}

		sel, ok := lhs.(*ast.SelectorExpr)
		if !ok {
			continue
		}
		selection, ok := pass.TypesInfo.Selections[sel]
		if !ok || selection.Kind() != types.FieldVal {
			continue
		}

		lit, ok := assign.Rhs[i].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			continue
		}

		named, ok := pass.TypesInfo.TypeOf(sel).(*types.Named)
		if !ok {
			continue
		}
		basic, ok := named.Underlying().(*types.Basic)
		if !ok || basic.Kind() != types.String {
			continue
		}
		if !hasConstants(named) {
			continue
		}

		pass.Reportf(lit.Pos(), "enum field %s assigned string literal", sel.Sel.Name)
	}
}

// hasConstants reports whether the type's package declares at least one
// constant of that type. A named string type without constants is just a
// string alias, not an enum.
func hasConstants(named *types.Named) bool {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return false
	}
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		if c, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(c.Type(), named) {
			return true
		}
	}
	return false
}
