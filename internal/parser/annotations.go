package parser

import (
	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/token"
)

var annotationKinds = map[string]ast.AnnotationKind{
	"trace":    ast.AnnTrace,
	"monitor":  ast.AnnMonitor,
	"config":   ast.AnnConfig,
	"parallel": ast.AnnParallel,
	"debug":    ast.AnnDebug,
}

// parseAnnotation parses the body after '@'. Each annotation constrains
// the shape of its value: @trace <- string, @monitor <- [strings],
// @config <- {object}, @parallel takes none, @debug takes an optional
// string.
func (p *Parser) parseAnnotation() (ast.Annotation, error) {
	nameTok, err := p.consume(token.IDENT, "expected annotation name after '@'")
	if err != nil {
		return ast.Annotation{}, err
	}
	name := nameTok.Lexeme

	kind, ok := annotationKinds[name]
	if !ok {
		return ast.Annotation{}, diagnostics.NewErrorWithSuggestion(
			diagnostics.ErrP006, nameTok,
			"unknown annotation '@"+name+"'",
			"supported annotations: @trace, @monitor, @config, @parallel, @debug",
		)
	}

	ann := ast.Annotation{Kind: kind, Name: name}
	if !p.match(token.L_ARROW) {
		if kind == ast.AnnTrace || kind == ast.AnnMonitor || kind == ast.AnnConfig {
			return ast.Annotation{}, p.errorAt(diagnostics.ErrP006, nameTok,
				"annotation '@"+name+"' requires a value via '<-'")
		}
		return ann, nil
	}

	if kind == ast.AnnParallel {
		return ast.Annotation{}, p.errorAt(diagnostics.ErrP006, nameTok,
			"annotation '@parallel' does not take a value")
	}

	value, err := p.primary()
	if err != nil {
		return ast.Annotation{}, err
	}
	if err := p.checkAnnotationValue(kind, name, nameTok, value); err != nil {
		return ast.Annotation{}, err
	}
	ann.Value = value
	return ann, nil
}

func (p *Parser) checkAnnotationValue(kind ast.AnnotationKind, name string, nameTok token.Token, value ast.Expression) error {
	switch kind {
	case ast.AnnTrace, ast.AnnDebug:
		if _, ok := value.(*ast.StringLiteral); !ok {
			return p.errorAt(diagnostics.ErrP006, nameTok,
				"annotation '@"+name+"' expects a string value")
		}
	case ast.AnnMonitor:
		arr, ok := value.(*ast.ArrayLiteral)
		if !ok {
			return p.errorAt(diagnostics.ErrP006, nameTok,
				"annotation '@monitor' expects an array of strings")
		}
		for _, elem := range arr.Elements {
			if _, ok := elem.(*ast.StringLiteral); !ok {
				return p.errorAt(diagnostics.ErrP006, nameTok,
					"annotation '@monitor' expects an array of strings")
			}
		}
	case ast.AnnConfig:
		if _, ok := value.(*ast.ObjectLiteral); !ok {
			return p.errorAt(diagnostics.ErrP006, nameTok,
				"annotation '@config' expects an object value")
		}
	}
	return nil
}
