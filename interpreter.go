// interpreter.go — the evaluator's public surface.
//
// This file, not a separate "raven.go", is the package's single entry
// point: construct an Evaluator, run a checked Program against it, get back
// nil or the first runtime *Error, exactly the "one well-known door in" a
// driver needs. interpreter_exec.go holds statement
// execution, interpreter_ops.go holds expression evaluation and the
// arithmetic/comparison operator tables.
package raven

import (
	"bufio"
	"io"
	"os"

	"go.uber.org/zap"
)

// StepResult is the value threaded back out of every statement-execution
// call. A function's body, a loop's body, and a block all inspect it after
// each statement: as soon as one comes back Returning, execution unwinds
// without looking at any further statements at that level or above, all the
// way up to the call that owns the function frame. This is the panic-free
// replacement for a single mutable "return slot".
type StepResult struct {
	Returning bool
	Value     Value
}

var stepNormal = StepResult{}

func stepReturn(v Value) StepResult { return StepResult{Returning: true, Value: v} }

// Evaluator walks a checked Program's statements and expressions against a
// live Env, calling into the shared Registry for function/struct/enum
// lookups and into the Loader for imports.
type Evaluator struct {
	reg    *Registry
	global *Env
	loader *Loader
	dir    string
	out    io.Writer
	in     *bufio.Reader
	log    *zap.Logger
}

// NewEvaluator builds an Evaluator over reg (produced by Check), rooted at
// dir for relative import resolution during "import" execution, writing
// program output to stdout and reading input() prompts from stdin.
func NewEvaluator(reg *Registry, loader *Loader, dir string) *Evaluator {
	return &Evaluator{
		reg:    reg,
		global: NewGlobalEnv(),
		loader: loader,
		dir:    dir,
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
		log:    newDiagnosticLogger(),
	}
}

// RunTopLevel executes every statement of prog against the Evaluator's
// global environment, in order. A bare top-level "return" is a checker
// error, so StepResult.Returning is never expected to surface here; it is
// still checked so a bug in the checker cannot silently swallow a return.
func (ev *Evaluator) RunTopLevel(prog *Program) *Error {
	ev.log.Debug("evaluating top level", zap.Int("statements", len(prog.Statements)), zap.String("dir", ev.dir))
	for _, st := range prog.Statements {
		res, err := ev.execStmt(ev.global, st)
		if err != nil {
			ev.log.Warn("runtime error", zap.String("kind", err.Kind.String()), zap.String("msg", err.Msg))
			return err
		}
		if res.Returning {
			return newError(Internal, st.stmtSpan(), "unexpected top-level return")
		}
	}
	return nil
}

// Run parses, checks, and evaluates src as a complete program rooted at dir,
// the shape a thin driver binary needs (cmd/raven performs the same steps
// itself rather than calling Run).
func Run(src, dir string, libDir string) *Error {
	prog, err := ParseProgram(src)
	if err != nil {
		return err
	}
	loader := NewLoader(libDir)
	reg, err := Check(prog, loader, dir)
	if err != nil {
		return err
	}
	ev := NewEvaluator(reg, loader, dir)
	return ev.RunTopLevel(prog)
}

// CheckOnly runs the pipeline through type checking and discards the
// result: the library form of the driver's check-only mode (cmd/raven calls
// ParseProgram and Check itself rather than this function).
func CheckOnly(src, dir, libDir string) *Error {
	prog, err := ParseProgram(src)
	if err != nil {
		return err
	}
	_, err = Check(prog, NewLoader(libDir), dir)
	return err
}
