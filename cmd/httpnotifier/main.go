// Command httpnotifier runs a local notification endpoint, and sends notifications to it.
//
//	httpnotifier serve [FLAGS...]
//	httpnotifier send [FLAGS...]
package main

import (
	"context"
	"errors"
	"github.com/saylorsolutions/httpnotifier/cli"
	"github.com/saylorsolutions/httpnotifier/signalx"
	"io"
	"os"
	"syscall"
)

// newCLI sets up the commands.
// User-visible output goes to stderr, and the message log is mirrored to stdout.
func newCLI(stdout, stderr io.Writer) *cli.CommandSet {
	set := cli.NewCommandSet("httpnotifier")
	set.Printer().Redirect(stderr)
	addServeCommand(set, stdout)
	addSendCommand(set)
	return set
}

func main() {
	ctx, stop := signalx.SignalExitCtx(context.Background(), os.Interrupt, syscall.SIGTERM)
	set := newCLI(os.Stdout, os.Stderr)
	err := set.Exec(ctx, os.Args[1:])
	stop()
	if err != nil {
		if !errors.Is(err, &cli.UsageError{}) {
			set.Printer().Println("Error:", err)
		}
		os.Exit(1)
	}
}
