package cmd

import (
	"fmt"
	"os"

	"github.com/lagoon-lang/lagoon/internal/bytecode"
	lagoonerrors "github.com/lagoon-lang/lagoon/internal/errors"
	"github.com/lagoon-lang/lagoon/internal/lexer"
	"github.com/lagoon-lang/lagoon/internal/parser"
	"github.com/spf13/cobra"
)

var (
	compileEvalExpr   string
	compileDisassmble bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile and run a restricted subset of lagoon through the bytecode VM",
	Long: `Compile lagoon source into the stack-VM's bytecode form and run it.

This back end deliberately only accepts arithmetic, comparisons, let, if,
return, and calls to print/println: it rejects structs, closures, and
require, since the bytecode VM is an intentionally incomplete back end.

Examples:
  # Compile and run a script
  lagoon compile script.lag

  # Show the disassembled bytecode before running
  lagoon compile --disassemble script.lag`,
	Args: cobra.MaximumNArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileEvalExpr, "eval", "e", "", "compile inline code instead of reading from file")
	compileCmd.Flags().BoolVar(&compileDisassmble, "disassemble", false, "show disassembled bytecode before running")
}

func compileScript(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case compileEvalExpr != "":
		input = compileEvalExpr
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

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		compilerErrors := lagoonerrors.FromStringErrors(p.Errors(), input, filename)
		fmt.Fprintln(os.Stderr, lagoonerrors.FormatErrors(compilerErrors, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	chunk, err := bytecode.Compile(program)
	if err != nil {
		return fmt.Errorf("bytecode compilation rejected this program: %w", err)
	}

	if compileDisassmble {
		fmt.Fprint(os.Stderr, bytecode.Disassemble(chunk))
	}

	vm := bytecode.NewVM(os.Stdout)
	if _, err := vm.Run(chunk); err != nil {
		return fmt.Errorf("bytecode execution failed: %w", err)
	}

	return nil
}
