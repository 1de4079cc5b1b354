package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/moasq/lk/internal/commands"
	"github.com/moasq/lk/internal/runner"
)

func main() {
	if err := commands.Execute(); err != nil {
		// A function that ran and failed passes its own status through.
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
