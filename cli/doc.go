/*
Package cli structures a CLI as a set of sub-commands, each with its own [pflag] flag set.

  - User-visible output goes to STDERR by default, through a [Printer] that can be redirected.
  - Flags are not interspersed with arguments, and apply only to the command they're given to.
  - '-h' and '--help' are set up for every [Command], and print its usage.
  - A [Command] that returns a [UsageError] has the error and its usage printed.

Invoking a CLI always follows this form:

	CLI_NAME SUB-COMMAND [FLAGS...] [ARGS...]

Commands receive a [context.Context] from [CommandSet.Exec], so long-running commands can be stopped.

[pflag]: https://pkg.go.dev/github.com/spf13/pflag
*/
package cli
