package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/jdl/internal/evaluator"
	"github.com/funvibe/jdl/internal/program"
)

const (
	historyFile = ".jdl_history"
	promptMain  = "==> "
)

const banner = `JDL interactive session. Each line is one instruction, e.g. [print, hello].
Ctrl+D or :quit exits.`

const helpText = `REPL commands:
  :quit    Exit the session
  :help    Show this help
`

// repl runs an interactive session against a persistent global
// environment. Each line is decoded as a single instruction or an inline
// instruction sequence.
func repl(eval *evaluator.Evaluator, env *evaluator.Environment, stderr io.Writer) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintln(eval.Out, banner)
	for {
		input, err := line.Prompt(promptMain)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			break // io.EOF on Ctrl+D
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ":quit", ":q":
			saveHistory(line, histPath)
			return 0
		case ":help", ":h":
			fmt.Fprint(eval.Out, helpText)
			continue
		}

		prog, err := program.Decode([]byte(input))
		if err != nil {
			printError(stderr, err.Error())
			continue
		}
		res := eval.Run(prog, env)
		switch res := res.(type) {
		case *evaluator.Error:
			printError(stderr, res.Inspect())
		case *evaluator.ExitSignal:
			saveHistory(line, histPath)
			return res.Code
		case *evaluator.Null:
			// Quiet, like a statement.
		default:
			fmt.Fprintln(eval.Out, res.Inspect())
		}
	}
	saveHistory(line, histPath)
	return 0
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}
