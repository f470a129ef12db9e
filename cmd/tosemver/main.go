package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/tosemver/internal/cli"
	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.FprintError(os.Stderr, fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

// runCLI builds the root command and runs it with args.
func runCLI(args []string) error {
	app := cli.New(clix.NewEnv())
	return app.Run(context.Background(), args)
}
