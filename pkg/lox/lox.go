// Package lox wires the scanner, parser, and interpreter into the two
// entry points spec.md §4.5 describes: running a single source file
// once, and driving an interactive REPL that keeps one interpreter
// alive across turns. Grounded on the teacher's cmd/smog/main.go
// runFile/runREPL split, adapted from a parse→compile→run pipeline to
// lox's scan→parse→interpret one, and from ad hoc fmt.Println
// reporting to structured logrus output.
package lox

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/kristofer/lox/pkg/ast"
	"github.com/kristofer/lox/pkg/interpreter"
	"github.com/kristofer/lox/pkg/parser"
	"github.com/kristofer/lox/pkg/scanner"
)

// Exit codes per spec.md §6/§7.
const (
	ExitSuccess     = 0
	ExitUsageError  = 64
	ExitSourceError = 65
)

// Runner drives one lox session: a single file execution, or a whole
// REPL's worth of turns sharing one Interpreter.
type Runner struct {
	logger *logrus.Logger
	interp *interpreter.Interpreter
}

// New creates a Runner that prints diagnostics to stderr in spec.md
// §6's wire format — "[line N] Error <loc>: <message>" — and program
// output to stdout.
func New() *Runner {
	return NewWithStreams(os.Stdout, os.Stderr)
}

// NewWithStreams is New, but with the stdout/stderr streams
// overridable — tests use this to capture both without touching the
// process's real file descriptors.
func NewWithStreams(stdout, stderr io.Writer) *Runner {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.DebugLevel)
	// The log format is the bare message: diagnostics already carry
	// their own "[line N] Error ...: ..." shape, so no logrus-level
	// prefix (timestamp, level name) may be added in front of it.
	logger.SetFormatter(&easy.Formatter{LogFormat: "%msg%\n"})
	return &Runner{logger: logger, interp: interpreter.NewWithOutput(stdout)}
}

// RunFile reads path, executes it once, and returns the process exit
// code spec.md §6 defines: 0 on success, 65 if scanning, parsing, or
// interpreting reported any error. A file that cannot be read is
// itself reported as a source error.
func (r *Runner) RunFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Errorf("Error reading %s: %v", path, err)
		return ExitSourceError
	}

	ok, hadStaticError := r.runSource(string(data))
	if hadStaticError || !ok {
		return ExitSourceError
	}
	return ExitSuccess
}

// RunREPL reads one line at a time from an interactive prompt,
// running each line against the session's one persistent Interpreter
// — variables defined on one line are visible on the next. An empty
// line, EOF, or interrupt ends the loop. Per spec.md §7, the REPL
// never exits non-zero: errors are reported and the loop continues.
func (r *Runner) RunREPL() int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		r.logger.Errorf("repl: %v", err)
		return ExitSuccess
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil || line == "" {
			return ExitSuccess
		}
		r.runSource(line)
	}
}

// runSource scans, parses, and interprets source, reporting every
// error it encounters along the way through the Runner's logger. It
// returns (interpretOK, hadStaticError): hadStaticError is true when
// scanning or parsing reported anything, in which case the source was
// never interpreted at all — spec.md §7's "the driver refuses to
// execute if scanning or parsing reported any error."
func (r *Runner) runSource(source string) (ok bool, hadStaticError bool) {
	var errs *multierror.Error

	tokens, err := scanner.New(source).ScanTokens(func(line int, message string) {
		r.logger.Errorf("[line %d] Error: %s", line, message)
	})
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	var stmts []ast.Stmt
	stmts, err = parser.New(tokens).Parse(func(e error) {
		r.logger.Error(e.Error())
	})
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	if errs.ErrorOrNil() != nil {
		return false, true
	}

	ok = r.interp.Interpret(stmts, func(e error) {
		r.logger.Error(e.Error())
	})
	return ok, false
}

// UsageError writes the one-line usage diagnostic spec.md §6
// prescribes for an invalid invocation.
func UsageError(stderr io.Writer) {
	fmt.Fprintln(stderr, "Usage: lox [script]")
}
