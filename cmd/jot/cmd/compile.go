package cmd

import (
	"fmt"
	"os"

	"github.com/jot-lang/jot/internal/compiler"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Check a Jot source file and hand it to the backend emitter",
	Long: `compile runs the full front end — parse, then type check — and,
if no errors were reported, passes the checked compilation unit to the
configured backend.Emitter.

This build wires backend.Stub, which reports that native code
generation is outside this module; compile still exercises and
reports on every front-end stage up to that point.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	p := compiler.New()
	_, err := p.Compile(path)
	reportDiagnostics(p, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Printf("%s: compiled\n", path)
	return nil
}
