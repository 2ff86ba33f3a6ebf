package cmd

import (
	"fmt"
	"os"

	"github.com/jot-lang/jot/internal/compiler"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Jot source file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	p := compiler.New()
	res, err := p.Parse(path)
	if err != nil {
		return err
	}
	reportDiagnostics(p, os.Stderr)
	if p.Diagnostics.HasErrors() {
		return fmt.Errorf("jot: %s failed to parse", path)
	}
	fmt.Println(res.Unit.String())
	return nil
}
