package cmd

import (
	"fmt"
	"os"

	"github.com/jot-lang/jot/internal/lexer"
	"github.com/jot-lang/jot/internal/token"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Jot source file and print the resulting tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func runLex(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("jot: reading %s: %w", path, err)
	}

	l := lexer.New(0, string(data))
	count := 0
	for {
		tok := l.NextToken()
		count++
		printToken(tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	fmt.Fprintf(os.Stderr, "%d tokens\n", count)
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("%-14s", tok.Kind.String())
	if tok.Literal != "" {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		out += fmt.Sprintf(" @%s", tok.Pos())
	}
	fmt.Println(out)
}
