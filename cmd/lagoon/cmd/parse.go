package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/lagoon-lang/lagoon/internal/ast"
	lagoonerrors "github.com/lagoon-lang/lagoon/internal/errors"
	"github.com/lagoon-lang/lagoon/internal/lexer"
	"github.com/lagoon-lang/lagoon/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseExpr    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse lagoon source code and display the AST",
	Long: `Parse lagoon source code and print it back out, or dump its AST
structure with --dump-ast.

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case parseExpr != "":
		input = parseExpr
		filename = "<eval>"
	case len(args) > 0:
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	default:
		filename = "<stdin>"
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		compilerErrors := lagoonerrors.FromStringErrors(p.Errors(), input, filename)
		fmt.Fprintln(os.Stderr, lagoonerrors.FormatErrors(compilerErrors, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if parseDumpAST {
		fmt.Println("AST:")
		dumpASTNode(program, 0)
	} else {
		fmt.Println(program.String())
	}

	return nil
}

func dumpASTNode(node ast.Node, depth int) {
	indentStr := ""
	for i := 0; i < depth; i++ {
		indentStr += "  "
	}

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d statements)\n", indentStr, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, depth+1)
		}
	case *ast.ExpressionStatement:
		fmt.Printf("%sExpressionStatement\n", indentStr)
		dumpASTNode(n.Expression, depth+1)
	case *ast.BlockStatement:
		fmt.Printf("%sBlockStatement (%d statements)\n", indentStr, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, depth+1)
		}
	case *ast.LetStatement:
		fmt.Printf("%sLetStatement: %s\n", indentStr, n.Name.Value)
		dumpASTNode(n.Value, depth+1)
	case *ast.ConstStatement:
		fmt.Printf("%sConstStatement: %s\n", indentStr, n.Name.Value)
		dumpASTNode(n.Value, depth+1)
	case *ast.FunctionDeclaration:
		fmt.Printf("%sFunctionDeclaration: %s\n", indentStr, n.Name.Value)
		dumpASTNode(n.Body, depth+1)
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement\n", indentStr)
		dumpASTNode(n.Condition, depth+1)
		dumpASTNode(n.Consequence, depth+1)
		if n.Alternative != nil {
			dumpASTNode(n.Alternative, depth+1)
		}
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement\n", indentStr)
		if n.Value != nil {
			dumpASTNode(n.Value, depth+1)
		}
	case *ast.InfixExpression:
		fmt.Printf("%sInfixExpression (%s)\n", indentStr, n.Operator)
		dumpASTNode(n.Left, depth+1)
		dumpASTNode(n.Right, depth+1)
	case *ast.PrefixExpression:
		fmt.Printf("%sPrefixExpression (%s)\n", indentStr, n.Operator)
		dumpASTNode(n.Right, depth+1)
	case *ast.NumberLiteral:
		fmt.Printf("%sNumberLiteral: %v\n", indentStr, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral: %q\n", indentStr, n.Value)
	case *ast.BooleanLiteral:
		fmt.Printf("%sBooleanLiteral: %v\n", indentStr, n.Value)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", indentStr, n.Value)
	case *ast.NullLiteral:
		fmt.Printf("%sNullLiteral\n", indentStr)
	default:
		fmt.Printf("%s%T: %s\n", indentStr, node, node.String())
	}
}
