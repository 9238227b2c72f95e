// Package loopcall reports session, archive and recall calls made once per
// loop iteration.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports per-item calls inside loops that have a batched form.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "reports per-item session, archive and recall calls inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// batched maps a per-item method to what should be used instead.
var batched = map[string]string{
	// Embedder
	"Embed": "EmbedBatch",
	// VectorDB
	"Search":       "one search with a larger limit",
	"SearchByKind": "one search with a larger limit",
	// SessionService: each Apply loads, saves and archives the whole game
	"Apply": "one Apply whose mutation loops",
	// SessionStore
	"Save": "one Save after the loop",
	// Archive
	"SaveVersion": "one SaveVersion after the loop",
	"LogAction":   "one LogAction with the items in details",
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// Closures built in a loop run later, usually once.
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if instead, ok := batched[sel.Sel.Name]; ok {
				pass.Reportf(call.Pos(), "%s called inside loop: use %s", sel.Sel.Name, instead)
			}
			return true
		})
	})

	return nil, nil
}
