// Command raven is a thin driver over the core pipeline: it reads a single
// .rv file, runs lex -> parse -> check -> evaluate, and reports the first
// error with a caret-annotated snippet. Argument parsing here is
// deliberately minimal — a full CLI surface and the REPL readline loop are
// out of scope for the core (they belong to a separate collaborator).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/martian56/raven"
	"github.com/martian56/raven/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var (
		checkOnly bool
		dumpAST   bool
		verbose   bool
		path      string
	)
	for _, a := range argv {
		switch a {
		case "--check":
			checkOnly = true
		case "--dump-ast":
			dumpAST = true
		case "--verbose":
			verbose = true
		default:
			path = a
		}
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: raven [--check] [--dump-ast] [--verbose] <file.rv>")
		return 1
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	dir := filepath.Dir(path)

	manifest, cfgErr := config.Load(filepath.Join(dir, "raven.toml"))
	if cfgErr != nil {
		fmt.Fprintln(os.Stderr, cfgErr)
		return 2
	}
	libDir := manifest.Modules.LibDir
	checkOnly = checkOnly || manifest.Run.CheckOnly
	verbose = verbose || manifest.Run.Verbose

	source := string(src)

	if verbose {
		tokens, terr := raven.Tokenize(source)
		if terr != nil {
			fmt.Fprintln(os.Stderr, raven.Render(terr, path, source))
			return 1
		}
		for _, tk := range tokens {
			fmt.Fprintf(os.Stderr, "%-10v %q %s\n", tk.Type, tk.Lexeme, tk.Span.Start)
		}
	}

	prog, perr := raven.ParseProgram(source)
	if perr != nil {
		fmt.Fprintln(os.Stderr, raven.Render(perr, path, source))
		return 1
	}

	if dumpAST {
		out, jerr := raven.DumpJSON(prog)
		if jerr != nil {
			fmt.Fprintln(os.Stderr, jerr)
			return 2
		}
		fmt.Println(string(out))
	}

	loader := raven.NewLoader(libDir)
	reg, cerr := raven.Check(prog, loader, dir)
	if cerr != nil {
		fmt.Fprintln(os.Stderr, raven.Render(cerr, path, source))
		return 1
	}
	if checkOnly {
		return 0
	}

	ev := raven.NewEvaluator(reg, loader, dir)
	if rerr := ev.RunTopLevel(prog); rerr != nil {
		fmt.Fprintln(os.Stderr, raven.Render(rerr, path, source))
		return 2
	}
	return 0
}
