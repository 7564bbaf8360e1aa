// Package repl implements the interactive sorrel prompt with line
// editing, history, and tab completion.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/sorrel"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

const PROMPT = ">> "

const LOGO = `
█▀ █▀█ █▀█ █▀█ █▀▀ █░░
▄█ █▄█ █▀▄ █▀▄ ██▄ █▄▄ `

// Keywords, operators, and qualified function names for tab completion
var completionWords = []string{
	// Keywords and operator synonyms
	"true", "false", "null", "not", "empty", "and", "or",
	"eq", "ne", "lt", "le", "gt", "ge", "div", "mod",
	"toupper", "tolower", "length", "sum",
	// str namespace
	"str:length", "str:upper", "str:lower", "str:trim", "str:split",
	"str:replace", "str:contains", "str:startsWith", "str:endsWith",
	"str:substring", "str:indexOf",
	// coll namespace
	"coll:size", "coll:join", "coll:reverse", "coll:sort",
	"coll:contains", "coll:keys", "coll:values",
	// date namespace
	"date:parse", "date:now", "date:year", "date:month", "date:day",
	"date:weekday", "date:format",
}

// Start runs the REPL until exit or Ctrl+D
func Start(out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(filterCompletions)

	historyFile := filepath.Join(os.TempDir(), ".sorrel_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	env := sorrel.NewEnv()

	fmt.Fprintf(out, "%s", LOGO)
	fmt.Fprintln(out, "v", version)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(out, "Type ':help' for REPL commands")
	fmt.Fprintln(out, "")

	for {
		input, err := line.Prompt(PROMPT)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return
		}
		if strings.HasPrefix(trimmed, ":") {
			handleReplCommand(trimmed, env, out)
			continue
		}

		line.AppendHistory(input)

		// lines containing ${ are treated as templates, anything else
		// as a bare expression
		var result string
		if strings.Contains(input, "${") {
			result, err = sorrel.Substitute(input, env)
		} else {
			var v value.Value
			v, err = sorrel.Eval(input, env)
			if err == nil {
				result = literal(v)
			}
		}
		if err != nil {
			printError(out, err)
			continue
		}
		fmt.Fprintln(out, result)
	}
}

func handleReplCommand(cmd string, env *sorrel.Env, out io.Writer) {
	switch cmd {
	case ":help", ":h", ":?":
		fmt.Fprintln(out, "REPL Commands:")
		fmt.Fprintln(out, "  :help, :h, :?   Show this help")
		fmt.Fprintln(out, "  :env            Show variables in scope")
		fmt.Fprintln(out, "  :clear          Clear all variables")
		fmt.Fprintln(out, "  exit, quit      Exit the REPL")
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Input containing ${...} is substituted as a template;")
		fmt.Fprintln(out, "anything else evaluates as a single expression.")

	case ":env":
		printEnvironment(env, out)

	case ":clear":
		env.Vars.Clear()
		fmt.Fprintln(out, "Environment cleared")

	default:
		fmt.Fprintf(out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
}

func printEnvironment(env *sorrel.Env, out io.Writer) {
	vars := env.Vars.Snapshot()
	if len(vars) == 0 {
		fmt.Fprintln(out, "(no variables)")
		return
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := vars[name]
		text := v.Inspect()
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		fmt.Fprintf(out, "  %s: %s = %s\n", name, v.Type(), text)
	}
}

// literal renders a value the way it would be written in an expression,
// so text results are distinguishable from numbers at the prompt
func literal(v value.Value) string {
	if s, ok := v.(*value.String); ok {
		return strconv.Quote(s.Value)
	}
	return v.Inspect()
}

func printError(out io.Writer, err error) {
	if se, ok := err.(*serrors.Error); ok {
		fmt.Fprintf(out, "%s error [%s]: %s\n", se.Class, se.Code, se.Message)
		return
	}
	fmt.Fprintf(out, "error: %v\n", err)
}

// filterCompletions returns completion suggestions for the word being typed
func filterCompletions(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if line[len(line)-1] == ' ' || line[len(line)-1] == '\t' {
		return nil
	}

	words := strings.Fields(line)
	lastWord := words[len(words)-1]
	prefix := line[:len(line)-len(lastWord)]

	var matches []string
	for _, word := range completionWords {
		if strings.HasPrefix(word, lastWord) && word != lastWord {
			matches = append(matches, prefix+word)
		}
	}
	return matches
}
