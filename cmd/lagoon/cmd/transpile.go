package cmd

import (
	"fmt"
	"os"

	"github.com/lagoon-lang/lagoon/internal/jstranspile"
	"github.com/lagoon-lang/lagoon/internal/lexer"
	"github.com/lagoon-lang/lagoon/internal/parser"
	"github.com/spf13/cobra"
)

var transpileEvalExpr string

var transpileCmd = &cobra.Command{
	Use:   "transpile [file]",
	Short: "Translate a restricted subset of lagoon to JavaScript",
	Long: `Run the experimental JavaScript back end over a restricted subset of
lagoon (arithmetic, let, fn, if, return, calls) and print the generated
JavaScript source. This back end is redundant with the tree-walking
interpreter and rejects structs, closures, and require.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranspile,
}

func init() {
	rootCmd.AddCommand(transpileCmd)

	transpileCmd.Flags().StringVarP(&transpileEvalExpr, "eval", "e", "", "transpile inline code instead of reading from file")
}

func runTranspile(_ *cobra.Command, args []string) error {
	var input string

	switch {
	case transpileEvalExpr != "":
		input = transpileEvalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		fmt.Fprintf(os.Stderr, "Parser errors:\n")
		for _, msg := range p.Errors() {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	out, err := jstranspile.Transpile(program)
	if err != nil {
		return fmt.Errorf("transpilation rejected this program: %w", err)
	}

	fmt.Print(out)
	return nil
}
