package main

import (
	"fmt"
	"os"

	"github.com/jot-lang/jot/cmd/jot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
