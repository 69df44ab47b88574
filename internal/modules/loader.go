package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/lexer"
	"github.com/susumulang/susumu/internal/parser"
	"github.com/susumulang/susumu/internal/pipeline"
)

// LoadedModule is a parsed module file with its export list resolved.
// Entries are immutable once cached.
type LoadedModule struct {
	Name      string
	Path      string
	Functions map[string]*ast.FunctionDef
	Exports   []string
}

// Exported reports whether name is in the module's export list.
func (m *LoadedModule) Exported(name string) bool {
	for _, e := range m.Exports {
		if e == name {
			return true
		}
	}
	return false
}

// Loader resolves module names to files, parses them and caches the
// result keyed by module name. Insert-once: a cached entry is never
// replaced or invalidated.
type Loader struct {
	mu          sync.Mutex
	cache       map[string]*LoadedModule
	searchPaths []string
	loadCount   int
}

func NewLoader() *Loader {
	return &Loader{
		cache: map[string]*LoadedModule{},
		searchPaths: []string{
			"./",
			"./stdlib/",
			"../stdlib/",
			"./modules/",
			"../modules/",
			"./susumu/stdlib/",
			"../susumu/stdlib/",
		},
	}
}

// RegisterSearchPath appends a directory to the module search list.
func (l *Loader) RegisterSearchPath(path string) {
	l.mu.Lock()
	l.searchPaths = append(l.searchPaths, path)
	l.mu.Unlock()
}

// LoadCount reports how many modules have been loaded from disk,
// excluding cache hits.
func (l *Loader) LoadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadCount
}

// Load returns the named module, reading and parsing it on first use.
func (l *Loader) Load(name string) (*LoadedModule, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if m, ok := l.cache[name]; ok {
		return m, nil
	}

	path, err := l.findModuleFile(name)
	if err != nil {
		return nil, err
	}

	m, err := parseModuleFile(name, path)
	if err != nil {
		return nil, err
	}

	l.cache[name] = m
	l.loadCount++
	return m, nil
}

func (l *Loader) findModuleFile(name string) (string, error) {
	candidates := []string{
		name + ".susu",
		name + ".susumu",
		filepath.Join(name, "mod.susu"),
		filepath.Join(name, "index.susu"),
	}

	for _, dir := range l.searchPaths {
		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, nil
			}
		}
	}
	return "", &diagnostics.DiagnosticError{
		Code:       diagnostics.ErrM001,
		Message:    fmt.Sprintf("module '%s' not found in search paths %v", name, l.searchPaths),
		Suggestion: "add the module's directory to searchPaths in susumu.yaml",
	}
}

func parseModuleFile(name, path string) (*LoadedModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}

	ctx := pipeline.NewPipelineContext(string(data))
	ctx.FilePath = path
	p := pipeline.New(
		lexer.NewLexerProcessor(),
		parser.NewParserProcessor(),
	)
	ctx = p.Run(ctx)
	if ctx.HasErrors() {
		return nil, fmt.Errorf("failed to parse module '%s': %s", name, ctx.Errors[0].Error())
	}

	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("failed to parse module '%s'", name)
	}

	functions := make(map[string]*ast.FunctionDef, len(program.Functions))
	for _, fn := range program.Functions {
		functions[fn.Name] = fn
	}

	exports := extractExports(program)
	for _, export := range exports {
		if _, ok := functions[export]; !ok {
			return nil, &diagnostics.DiagnosticError{
				Code:    diagnostics.ErrM002,
				Message: fmt.Sprintf("cannot export function '%s': function not defined", export),
				File:    path,
			}
		}
	}

	return &LoadedModule{
		Name:      name,
		Path:      path,
		Functions: functions,
		Exports:   exports,
	}, nil
}
