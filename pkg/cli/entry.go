package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/jdl/internal/evaluator"
	"github.com/funvibe/jdl/internal/program"
)

const appName = "jdl"

const usage = `Usage: jdl [program file]

Runs a JDL program: a YAML/JSON document whose root is a sequence of
[opcode, operands...] instructions. Without a file argument an
interactive session is started.
`

// Entry is the driver entry point. It returns the process exit code.
func Entry(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if len(args) > 1 {
		fmt.Fprintf(stderr, "%s: expected at most one argument, got %d\n", appName, len(args))
		return 2
	}

	eval := evaluator.New()
	eval.Out = stdout
	eval.In = bufio.NewReader(stdin)
	env := evaluator.NewEnvironment()

	if len(args) == 0 {
		return repl(eval, env, stderr)
	}
	return runFile(eval, env, args[0], stderr)
}

func runFile(eval *evaluator.Evaluator, env *evaluator.Environment, path string, stderr io.Writer) int {
	prog, err := program.DecodeFile(path)
	if err != nil {
		printError(stderr, err.Error())
		return 1
	}
	res := eval.Run(prog, env)
	switch res := res.(type) {
	case *evaluator.Error:
		printError(stderr, res.Inspect())
		return 1
	case *evaluator.ExitSignal:
		return res.Code
	default:
		return 0
	}
}

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

// printError writes a fatal report, colored only when the destination is
// a terminal.
func printError(w io.Writer, msg string) {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		msg = red(msg)
	}
	fmt.Fprintln(w, msg)
}
