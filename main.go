//go:build !test

// Command yumreplay lists the packages still installed according to a yum log.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Yumreplay(os.Stdout, os.Stderr, os.DirFS("/"), nil, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
}
