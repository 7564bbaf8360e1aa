package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/repl"
	"github.com/sambeau/sorrel/pkg/sorrel/sorrel"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Version is set at compile time via -ldflags
var Version = "0.3.1"

var (
	// Display flags
	helpFlag        = flag.Bool("h", false, "Show help message")
	helpLongFlag    = flag.Bool("help", false, "Show help message")
	versionFlag     = flag.Bool("V", false, "Show version information")
	versionLongFlag = flag.Bool("version", false, "Show version information")

	// Evaluation flags
	evalFlag         = flag.String("e", "", "Evaluate expression string")
	evalLongFlag     = flag.String("eval", "", "Evaluate expression string")
	templateFlag     = flag.String("t", "", "Substitute a template string")
	templateLongFlag = flag.String("template", "", "Substitute a template string")
	checkFlag        = flag.Bool("check", false, "Check syntax without evaluating")
	varsFlag         = flag.String("vars", "", "Preload variables from a YAML file")
)

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag || *helpLongFlag {
		printHelp()
		os.Exit(0)
	}
	if *versionFlag || *versionLongFlag {
		fmt.Printf("sorrel version %s\n", Version)
		os.Exit(0)
	}

	evalCode := *evalFlag
	if evalCode == "" {
		evalCode = *evalLongFlag
	}
	templateText := *templateFlag
	if templateText == "" {
		templateText = *templateLongFlag
	}

	env := sorrel.NewEnv()
	if *varsFlag != "" {
		if err := loadVars(env, *varsFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	switch {
	case evalCode != "":
		if *checkFlag {
			os.Exit(checkExpression(evalCode, env))
		}
		evaluate(evalCode, env)
	case templateText != "":
		substitute(templateText, env)
	case *checkFlag:
		files := flag.Args()
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --check requires -e or at least one file")
			os.Exit(2)
		}
		os.Exit(checkFiles(files, env))
	case len(flag.Args()) > 0:
		substituteFile(flag.Args()[0], env)
	default:
		repl.Start(os.Stdout, Version)
	}
}

func printHelp() {
	fmt.Printf(`sorrel - expression language evaluator version %s

Usage:
  sorrel [options] [file]
  sorrel -e "expression"
  sorrel -t "template with ${...}"
  sorrel --check <file>...

Display Options:
  -h, --help            Show this help message
  -V, --version         Show version information

Evaluation Options:
  -e, --eval <expr>     Evaluate an expression and print the result
  -t, --template <text> Substitute ${...} placeholders in text
  --check               Check syntax without evaluating
  --vars <file.yaml>    Preload variables from a YAML mapping

Examples:
  sorrel                          Start interactive REPL
  sorrel -e "1 + 2"               Evaluate inline (outputs: 3)
  sorrel -e "a * 2" --vars v.yaml Evaluate with preloaded variables
  sorrel -t 'Hi ${name}!'         Substitute a template string
  sorrel letter.txt               Substitute a template file to stdout
  sorrel --check letter.txt       Check template syntax
  sorrel -e "1 +" --check         Check expression syntax
`, Version)
}

func evaluate(code string, env *sorrel.Env) {
	v, err := sorrel.Eval(code, env)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	fmt.Println(value.ToText(v))
}

func substitute(text string, env *sorrel.Env) {
	out, err := sorrel.Substitute(text, env)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	fmt.Println(out)
}

func substituteFile(filename string, env *sorrel.Env) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file '%s': %v\n", filename, err)
		os.Exit(1)
	}
	out, err := sorrel.Substitute(string(content), env)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func checkExpression(code string, env *sorrel.Env) int {
	if _, err := sorrel.Parse(code, env); err != nil {
		printError(err)
		return 1
	}
	return 0
}

// checkFiles parses each file as a template without evaluating it
func checkFiles(files []string, env *sorrel.Env) int {
	code := 0
	for _, filename := range files {
		content, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
			return 2
		}
		if _, err := sorrel.SubstituteLazy(string(content), env); err != nil {
			fmt.Fprintf(os.Stderr, "%s: ", filename)
			printError(err)
			code = 1
		}
	}
	return code
}

// loadVars reads a YAML mapping of variable names to values into env
func loadVars(env *sorrel.Env, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := toValue(raw[name])
		if err != nil {
			return fmt.Errorf("%s: variable %q: %w", filename, name, err)
		}
		env.Set(name, v)
	}
	return nil
}

// toValue converts a decoded YAML value into a sorrel value
func toValue(raw any) (value.Value, error) {
	switch v := raw.(type) {
	case nil:
		return value.NULL, nil
	case bool:
		return value.FromBool(v), nil
	case int:
		return &value.Integer{Value: int64(v)}, nil
	case int64:
		return &value.Integer{Value: v}, nil
	case float64:
		return &value.Float{Value: v}, nil
	case string:
		return &value.String{Value: v}, nil
	case []any:
		elements := make([]value.Value, len(v))
		for i, el := range v {
			converted, err := toValue(el)
			if err != nil {
				return nil, err
			}
			elements[i] = converted
		}
		return &value.Array{Elements: elements}, nil
	case map[string]any:
		pairs := make(map[string]value.Value, len(v))
		for k, el := range v {
			converted, err := toValue(el)
			if err != nil {
				return nil, err
			}
			pairs[k] = converted
		}
		return &value.Dict{Pairs: pairs}, nil
	}
	return nil, fmt.Errorf("unsupported value of type %T", raw)
}

func printError(err error) {
	if se, ok := err.(*serrors.Error); ok {
		if se.Pos >= 0 {
			fmt.Fprintf(os.Stderr, "%s error [%s] at %d: %s\n", se.Class, se.Code, se.Pos, se.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s error [%s]: %s\n", se.Class, se.Code, se.Message)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
