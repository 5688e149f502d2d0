package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kula-app/parking-lot/internal/errors"
)

func main() {
	// Entry point: create a root context and run the application.
	ctx := context.Background()

	// Pass in the command line arguments, environment variables and standard
	// streams so the run function can be tested without touching the process.
	if err := run(ctx, os.Args, os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(errors.GetExitCode(err))
	}
}
