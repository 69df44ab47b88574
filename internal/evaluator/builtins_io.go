package evaluator

import (
	"fmt"
	"os"
	"strings"
)

func (r *Registry) registerIO() {
	r.register("print", 1, true, builtinPrint)
	r.register("println", 1, true, builtinPrintln)
	r.register("readFile", 1, false, builtinReadFile)
	r.register("writeFile", 2, false, builtinWriteFile)
	r.register("appendFile", 2, false, builtinAppendFile)
	r.register("fileExists", 1, false, builtinFileExists)
}

func printArgs(args []Object) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Inspect()
	}
	return strings.Join(parts, " ")
}

// print returns its first argument so it can sit in the middle of a
// chain without breaking the flow.
func builtinPrint(ev *Evaluator, args []Object) (Object, error) {
	fmt.Fprint(ev.Out, printArgs(args))
	if len(args) > 0 {
		return args[0], nil
	}
	return NULL, nil
}

func builtinPrintln(ev *Evaluator, args []Object) (Object, error) {
	fmt.Fprintln(ev.Out, printArgs(args))
	if len(args) > 0 {
		return args[0], nil
	}
	return NULL, nil
}

func builtinReadFile(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("readFile", args, 1); err != nil {
		return nil, err
	}
	path, err := argString("readFile", args, 0)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, callErrorf("readFile: %v", err)
	}
	return &String{Value: string(data)}, nil
}

func builtinWriteFile(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("writeFile", args, 2); err != nil {
		return nil, err
	}
	path, err := argString("writeFile", args, 0)
	if err != nil {
		return nil, err
	}
	content, err := argString("writeFile", args, 1)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, callErrorf("writeFile: %v", err)
	}
	return TRUE, nil
}

func builtinAppendFile(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("appendFile", args, 2); err != nil {
		return nil, err
	}
	path, err := argString("appendFile", args, 0)
	if err != nil {
		return nil, err
	}
	content, err := argString("appendFile", args, 1)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, callErrorf("appendFile: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return nil, callErrorf("appendFile: %v", err)
	}
	return TRUE, nil
}

func builtinFileExists(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("fileExists", args, 1); err != nil {
		return nil, err
	}
	path, err := argString("fileExists", args, 0)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(path)
	return nativeBool(statErr == nil), nil
}
