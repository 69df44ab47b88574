package diagnostics

import (
	"fmt"

	"github.com/susumulang/susumu/internal/token"
)

// ErrorCode identifies a diagnostic category. The letter names the stage
// (L lexer, P parser, T types, R runtime, M modules, C config).
type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // unexpected character
	ErrL002 ErrorCode = "L002" // unterminated string

	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // missing delimiter
	ErrP003 ErrorCode = "P003" // malformed arrow chain
	ErrP004 ErrorCode = "P004" // malformed conditional
	ErrP005 ErrorCode = "P005" // malformed pattern
	ErrP006 ErrorCode = "P006" // unknown annotation
	ErrP007 ErrorCode = "P007" // malformed function definition

	ErrT001 ErrorCode = "T001" // type mismatch (advisory)
	ErrT002 ErrorCode = "T002" // convergence type mismatch (advisory)

	ErrM001 ErrorCode = "M001" // module not found
	ErrM002 ErrorCode = "M002" // export of undefined function

	ErrE001 ErrorCode = "E001" // runtime evaluation failure

	ErrC001 ErrorCode = "C001" // invalid runtime configuration
)

// DiagnosticError is a positioned, coded error produced by any pipeline
// stage. Suggestion, when present, is a one-line actionable hint.
type DiagnosticError struct {
	Code       ErrorCode
	Message    string
	Suggestion string
	File       string
	Line       int
	Column     int
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: message,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func NewErrorWithSuggestion(code ErrorCode, tok token.Token, message, suggestion string) *DiagnosticError {
	err := NewError(code, tok, message)
	err.Suggestion = suggestion
	return err
}

func (e *DiagnosticError) Error() string {
	location := fmt.Sprintf("line %d, column %d", e.Line, e.Column)
	if e.File != "" {
		location = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
	}
	msg := fmt.Sprintf("[%s] %s: %s", e.Code, location, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (hint: %s)", e.Suggestion)
	}
	return msg
}
