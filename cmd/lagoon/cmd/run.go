package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lagoon-lang/lagoon/internal/config"
	lagoonerrors "github.com/lagoon-lang/lagoon/internal/errors"
	"github.com/lagoon-lang/lagoon/internal/interp"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr    string
	runDebug       bool
	runSearchPaths []string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a lagoon file or expression",
	Long: `Execute a lagoon program from a file or inline expression.

Examples:
  # Run a script file
  lagoon run script.lag

  # Evaluate an inline expression
  lagoon run -e "println(\"hello\");"

  # Run with a final dump of globals
  lagoon run --debug script.lag`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "dump the final globals before exit (root-environment bindings are not printed)")
	runCmd.Flags().StringSliceVar(&runSearchPaths, "search-path", nil, "additional require search paths")
}

func runScript(cmd *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case runEvalExpr != "":
		input = runEvalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	dir := "."
	if filename != "<eval>" {
		dir = filepath.Dir(filename)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load .lagoonrc.yaml: %w", err)
	}
	cfg = config.Merge(cfg, runDebug, cmd.Flags().Changed("debug"), runSearchPaths)

	prog, errs := interp.Parse(input)
	if len(errs) > 0 {
		compilerErrors := lagoonerrors.FromStringErrors(errs, input, filename)
		fmt.Fprintln(os.Stderr, lagoonerrors.FormatErrors(compilerErrors, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	interpreter := interp.New()
	interpreter.SearchPaths = cfg.SearchPaths
	interpreter.SourcePath = filename
	interpreter.Source = input

	result := interpreter.Eval(prog)

	if cfg.Debug {
		dumpGlobals(interpreter)
	}

	if errVal, ok := result.(*interp.ErrorValue); ok {
		compilerError := lagoonerrors.NewCompilerError(errVal.Pos, errVal.Message, errVal.Source, errVal.File)
		fmt.Fprintln(os.Stderr, compilerError.Format(true))
		return fmt.Errorf("execution failed")
	}

	return nil
}

func dumpGlobals(i *interp.Interpreter) {
	names := i.Globals.Names()
	sort.Strings(names)
	fmt.Fprintln(os.Stderr, "Globals:")
	for _, name := range names {
		v, _ := i.Globals.Get(name)
		fmt.Fprintf(os.Stderr, "  %s = %s\n", name, v.String())
	}
}
