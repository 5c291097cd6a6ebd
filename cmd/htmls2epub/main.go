// Package main is the entry point for the htmls2epub CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/htmls2epub/cli/internal/cmd"
	herrors "github.com/htmls2epub/cli/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		var exitErr *herrors.ExitError
		if errors.As(err, &exitErr) {
			// The command layer prints errors it reports itself.
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(herrors.ExitCodeFromError(err))
	}
}
