package modules

import (
	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/config"
)

// extractExports scans the program for arrow chains ending in the
// 'export' identifier and collects the exported function names. The
// operand before 'export' may be an identifier, a tuple of identifiers
// or a function call.
func extractExports(program *ast.Program) []string {
	var exports []string

	if program.Main != nil {
		findExports(program.Main, &exports)
	}
	for _, fn := range program.Functions {
		findExports(fn.Body, &exports)
	}
	return exports
}

func findExports(expr ast.Expression, exports *[]string) {
	switch node := expr.(type) {
	case *ast.ArrowChain:
		collectExportPattern(node.Expressions, exports)
	case *ast.Block:
		for _, e := range node.Expressions {
			findExports(e, exports)
		}
	case *ast.Conditional:
		findExports(node.Then, exports)
		for _, branch := range node.ElseIfs {
			findExports(branch.Body, exports)
		}
		if node.Else != nil {
			findExports(node.Else, exports)
		}
	case *ast.ForEach:
		findExports(node.Body, exports)
	case *ast.While:
		findExports(node.Body, exports)
	case *ast.Match:
		for _, c := range node.Cases {
			findExports(c.Body, exports)
		}
	}
}

func collectExportPattern(expressions []ast.Expression, exports *[]string) {
	if len(expressions) < 2 {
		return
	}
	last, ok := expressions[len(expressions)-1].(*ast.Identifier)
	if !ok || last.Value != config.ExportFuncName {
		return
	}

	switch head := expressions[len(expressions)-2].(type) {
	case *ast.Identifier:
		*exports = append(*exports, head.Value)
	case *ast.TupleLiteral:
		for _, elem := range head.Elements {
			if ident, ok := elem.(*ast.Identifier); ok {
				*exports = append(*exports, ident.Value)
			}
		}
	case *ast.CallExpression:
		*exports = append(*exports, head.Name)
	}
}
