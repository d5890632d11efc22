// Command catalogctl administers a service catalog from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/catalogctl/internal/cli"
	"github.com/rshade/catalogctl/internal/forms"
	"github.com/rshade/catalogctl/pkg/version"
)

// exitValidation is returned when submitted values fail validation.
const exitValidation = 2

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.String())
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps a command error onto the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var verrs forms.ValidationErrors
	if errors.As(err, &verrs) {
		return exitValidation
	}
	return 1
}
