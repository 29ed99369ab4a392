package config

import (
	"fmt"
	"io"
	"os"
)

var (
	exitWriter io.Writer = os.Stderr
	exit                 = os.Exit
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(exitWriter, format+"\n", args...)
	exit(1)
}

// ExitOnError calls Exitf with the given prefix when err is not nil.
func ExitOnError(prefix string, err error) {
	if err == nil {
		return
	}
	Exitf("%s: %v", prefix, err)
}
