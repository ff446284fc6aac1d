// Command gridpath animates shortest-path searches on text boards.
//
// Usage:
//
//	gridpath run   [-config file] [-board file] [-strategy name] [-interval d] [-max-steps n] [-quiet]
//	gridpath serve [-config file] [-listen addr]
//	gridpath config [-config file]
//	gridpath gen   [-rows n] [-cols n] [-walls p] [-seed n]
//
// run animates one search in the terminal and prints its metrics. serve
// starts the websocket viewer, config prints the effective settings and gen
// writes a random board to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: gridpath <command> [flags]

commands:
  run     animate a search in the terminal
  serve   start the live viewer server
  config  print the effective configuration
  gen     print a random board
`

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and maps its error to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "run":
		err = runSearch(ctx, args[1:], stdout, stderr)
	case "serve":
		err = runServe(ctx, args[1:], stderr)
	case "config":
		err = runConfig(args[1:], stdout, stderr)
	case "gen":
		err = runGen(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "gridpath: unknown command %q\n%s", args[0], usage)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		fmt.Fprintf(stderr, "gridpath: %v\n", err)
		return exitFail
	}
}
