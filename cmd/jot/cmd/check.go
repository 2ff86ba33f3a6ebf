package cmd

import (
	"fmt"
	"os"

	"github.com/jot-lang/jot/internal/compiler"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse and type-check a Jot source file without compiling it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	p := compiler.New()
	if _, err := p.Check(path); err != nil {
		return err
	}
	reportDiagnostics(p, os.Stderr)
	if p.Diagnostics.HasErrors() {
		return fmt.Errorf("jot: %s failed type checking", path)
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}
