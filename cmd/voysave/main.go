// Package main is the entry point for the voysave CLI.
package main

import (
	"fmt"
	"os"

	"github.com/tavisk/voysave/cmd/voysave/commands"
	"github.com/tavisk/voysave/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "Hint: %s\n", exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		os.Exit(errors.ExitUser)
	}
}
