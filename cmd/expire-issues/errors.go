package main

import (
	"fmt"
	"io"
	"os"
)

// Swapped in tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// FatalError prints err as "Error: <msg>" and exits with status 1.
func FatalError(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	exit(1)
}
