package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/config"
	"github.com/susumulang/susumu/internal/evaluator"
	"github.com/susumulang/susumu/internal/lexer"
	"github.com/susumulang/susumu/internal/parser"
	"github.com/susumulang/susumu/internal/pipeline"
)

const usage = `Usage: susumu [options] [file]

Runs a susumu source file, or starts a REPL when no file is given.

Options:
  --debug      print the runtime type of the final result
  --help       show this help
`

// Options are the host-level flags, separate from anything the script
// itself sees.
type Options struct {
	Debug bool
	Out   io.Writer
	Err   io.Writer
}

// Run is the CLI entry point. It returns a process exit code.
func Run(args []string) int {
	opts := Options{Out: os.Stdout, Err: os.Stderr}

	var file string
	for _, arg := range args {
		switch {
		case arg == "-debug" || arg == "--debug":
			opts.Debug = true
		case arg == "-help" || arg == "--help" || arg == "help":
			fmt.Fprint(opts.Out, usage)
			return 0
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(opts.Err, "unknown option: %s\n", arg)
			fmt.Fprint(opts.Err, usage)
			return 2
		case file == "":
			file = arg
		}
	}

	if file == "" {
		if isTerminal(os.Stdin) {
			return runRepl(opts)
		}
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(opts.Err, "Error: %s\n", err)
			return 1
		}
		return runSource(string(source), "<stdin>", opts)
	}
	return RunFile(file, opts)
}

// RunFile executes a source file, resolving a directory argument to its
// entry file.
func RunFile(path string, opts Options) int {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		entry := findEntryFile(path)
		if entry == "" {
			fmt.Fprintf(opts.Err, "Error: entry file not found in directory %s\n", path)
			return 1
		}
		path = entry
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(opts.Err, "Error: %s\n", err)
		return 1
	}
	return runSource(string(source), path, opts)
}

func findEntryFile(dir string) string {
	base := filepath.Base(dir)
	for _, ext := range config.SourceFileExtensions {
		candidate := filepath.Join(dir, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	for _, name := range []string{"mod.susu", "index.susu", "main.susu"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func runSource(source, path string, opts Options) int {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path

	evalStage := evaluator.NewEvaluatorProcessor(opts.Out)
	if cfg := loadConfig(path); cfg != nil {
		evalStage.SearchPaths = cfg.SearchPaths
	}

	p := pipeline.New(
		lexer.NewLexerProcessor(),
		parser.NewParserProcessor(),
		evalStage,
	)
	ctx = p.Run(ctx)

	for _, warning := range ctx.Warnings {
		fmt.Fprintf(opts.Err, "%s%s%s\n", colorYellow(), warning.Error(), colorReset())
	}
	if ctx.HasErrors() {
		for _, err := range ctx.Errors {
			fmt.Fprintf(opts.Err, "%sError: %s%s\n", colorRed(), err.Message, colorReset())
		}
		return 1
	}

	if obj, ok := ctx.Result.(evaluator.Object); ok {
		fmt.Fprintln(opts.Out, obj.Inspect())
		if opts.Debug {
			fmt.Fprintf(opts.Out, "[debug] result type: %s\n", obj.Type())
		}
	}
	return 0
}

// runRepl reads expressions line by line, keeping one evaluator alive
// so definitions persist across inputs.
func runRepl(opts Options) int {
	fmt.Fprintln(opts.Out, "susumu repl (ctrl-d to exit)")
	ev := evaluator.New()
	ev.Out = opts.Out
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(opts.Out, ">> ")
		if !scanner.Scan() {
			fmt.Fprintln(opts.Out)
			return 0
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ctx := pipeline.NewPipelineContext(line)
		ctx.FilePath = "<repl>"
		p := pipeline.New(lexer.NewLexerProcessor(), parser.NewParserProcessor())
		ctx = p.Run(ctx)
		if ctx.HasErrors() {
			for _, err := range ctx.Errors {
				fmt.Fprintf(opts.Err, "%sError: %s%s\n", colorRed(), err.Message, colorReset())
			}
			continue
		}

		program, ok := ctx.AstRoot.(*ast.Program)
		if !ok {
			continue
		}
		result, err := ev.Execute(program)
		if err != nil {
			fmt.Fprintf(opts.Err, "%sError: %s%s\n", colorRed(), err, colorReset())
			continue
		}
		fmt.Fprintln(opts.Out, result.Inspect())
	}
}

// loadConfig reads susumu.yaml from the source file's directory, then
// the working directory. A broken config is reported but not fatal.
func loadConfig(sourcePath string) *config.Config {
	candidates := []string{config.ConfigFileName}
	if dir := filepath.Dir(sourcePath); dir != "." && dir != "" {
		candidates = []string{filepath.Join(dir, config.ConfigFileName), config.ConfigFileName}
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		cfg, err := config.Load(candidate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", candidate, err)
			return nil
		}
		return cfg
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(os.Stderr)
}

func colorRed() string {
	if colorEnabled() {
		return "\033[31m"
	}
	return ""
}

func colorYellow() string {
	if colorEnabled() {
		return "\033[33m"
	}
	return ""
}

func colorReset() string {
	if colorEnabled() {
		return "\033[0m"
	}
	return ""
}
