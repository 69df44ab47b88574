package config

const SourceFileExt = ".susu"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".susu", ".susumu"}

// MaxEvalDepth bounds expression recursion in the evaluator.
const MaxEvalDepth = 10000

// Tagged-value constructor names
const (
	SomeCtorName    = "some"
	NoneCtorName    = "none"
	SuccessCtorName = "success"
	ErrorCtorName   = "error"
)

// Module pseudo-function names, intercepted before builtin lookup
const (
	FromFuncName   = "from"
	ImportFuncName = "import"
	ExportFuncName = "export"
)
