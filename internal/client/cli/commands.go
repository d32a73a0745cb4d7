package cli

import (
	"context"
	"fmt"
	"os"
)

// Run dispatches one command. Errors are printed and terminate the
// process with a non-zero status.
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "put":
		err = c.RunPut(ctx, args)
	case "get":
		err = c.RunGet(ctx, args)
	case "list":
		err = c.RunList(ctx, args)
	case "delete":
		err = c.RunDelete(ctx, args)
	case "attach":
		err = c.RunAttach(ctx, args)
	case "sync":
		err = c.RunSync(ctx)
	case "status":
		err = c.RunStatus(ctx)
	case "queue":
		err = c.RunQueue(ctx, args)
	case "resolve":
		err = c.RunResolve(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
