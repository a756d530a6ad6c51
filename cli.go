package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `icss - compiles ICSS stylesheets to CSS

Usage:
    icss <command> [arguments]

Commands:
    build <file>    Compile a .icss file to CSS
    check <file>    Parse and type-check a .icss file
    eval <code>     Compile inline ICSS and print the CSS
    ast <file>      Print the syntax tree as an s-expression
    repl            Start an interactive session
    help            Show this help message

Examples:
    icss build -o site.css site.icss
    icss check site.icss
    icss eval '.box { width: 2 * 10px; }'
    icss ast -folded site.icss

Use "icss <command> -h" for more information about a command.
`)
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: from icss.yaml or <filename>.css)")
	configPath := fs.String("config", DefaultConfigFile, "Project configuration file")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: icss build [-o output] [-config file] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .icss file to CSS\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose && cfg.Path != "" {
		fmt.Printf("Using configuration %s\n", cfg.Path)
	}

	outputFile := *output
	if outputFile == "" {
		outputFile = cfg.OutputPath(filename)
	}

	if *verbose {
		fmt.Printf("Compiling %s to %s...\n", filename, outputFile)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	result, err := CompileWith(source, cfg.Printer())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed in %s: %v\n", filename, err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(result.AST))
		fmt.Printf("Folded: %s\n", ToSExpr(result.Folded))
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outputFile, []byte(result.CSS+"\n"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing CSS file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d rules)\n", outputFile, len(result.Folded.Rules()))
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: icss check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and type-check a .icss file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	// Parse and check (but don't fold or generate)
	ast, syntaxErrors := ParseSource(source)
	if syntaxErrors.HasErrors() {
		fmt.Fprintf(os.Stderr, "Parsing errors in %s:\n%s\n", filename, syntaxErrors.String())
		os.Exit(1)
	}

	typeErrors := Check(ast)
	if typeErrors.HasErrors() {
		fmt.Fprintf(os.Stderr, "Type checking errors in %s:\n%s\n", filename, typeErrors.String())
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(ast))
	}
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: icss eval [-v] <code>\n")
		fmt.Fprintf(os.Stderr, "Compile inline ICSS and print the CSS\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	code := fs.Arg(0)

	if *verbose {
		fmt.Printf("Evaluating: %s\n", code)
	}

	result, err := Compile([]byte(code))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Folded: %s\n", ToSExpr(result.Folded))
	}
	fmt.Println(result.CSS)
}

func astCommand(args []string) {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	folded := fs.Bool("folded", false, "Print the tree after checking and folding")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: icss ast [-folded] <file>\n")
		fmt.Fprintf(os.Stderr, "Print the syntax tree as an s-expression\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	if !*folded {
		ast, syntaxErrors := ParseSource(source)
		if syntaxErrors.HasErrors() {
			fmt.Fprintf(os.Stderr, "Parsing errors in %s:\n%s\n", filename, syntaxErrors.String())
			os.Exit(1)
		}
		fmt.Println(ToSExpr(ast))
		return
	}

	result, err := Compile(source)
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		fmt.Fprintf(os.Stderr, "%s errors in %s:\n%s\n", compileErr.Stage, filename, compileErr.Errors.String())
		os.Exit(1)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(ToSExpr(result.Folded))
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		buildCommand(args)
	case "check":
		checkCommand(args)
	case "eval":
		evalCommand(args)
	case "ast":
		astCommand(args)
	case "repl":
		os.Exit(replCommand(args))
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
