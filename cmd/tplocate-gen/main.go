// Command tplocate-gen lists the templates under one or more roots and writes a Go file
// with one constant per template name, so callers reference templates without string typos.
//
//	tplocate-gen --root views --root shared --pkg views --out views/names_gen.go
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
