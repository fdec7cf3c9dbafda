package cli

import (
	"bytes"
	"context"
	"errors"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"os"
	"testing"
)

func TestUsageError_Is(t *testing.T) {
	err := NewUsageError("test")
	assert.ErrorIs(t, err, &UsageError{})

	var ErrTesting = errors.New("test")
	err2 := NewUsageError("%w", ErrTesting)
	assert.ErrorIs(t, err2, &UsageError{})
	assert.ErrorIs(t, err2, ErrTesting)
}

func TestUsageError_Error(t *testing.T) {
	err := &UsageError{}
	assert.Equal(t, "usage error", err.Error(), "Default error output should be returned when there is no wrapping error")
	err2 := NewUsageError("test")
	assert.Equal(t, "usage error: test", err2.Error(), "The wrapped error's output should be returned when Error is called")
}

func TestCommand_Exec_UsageError(t *testing.T) {
	var buf bytes.Buffer
	set := NewCommandSet("parent")
	set.Printer().Redirect(&buf)
	set.AddCommand("command", "test command").Does(func(_ context.Context, _ *flag.FlagSet, _ *Printer) error {
		return errors.New("not a usage error")
	})
	assert.Error(t, set.Exec(context.Background(), []string{"command"}))
	assert.Empty(t, buf.String(), "Only usage errors should print usage")
}

func ExampleNewUsageError() {
	tlc := NewCommandSet("parent")
	cmd := tlc.AddCommand("command", "test command").Usage("command")
	cmd.Does(func(_ context.Context, _ *flag.FlagSet, _ *Printer) error {
		return NewUsageError("test usage error")
	})
	// Done for testing purposes
	tlc.Printer().Redirect(os.Stdout)
	// Error not handled for brevity
	_ = tlc.Exec(context.Background(), []string{"command"})

	// Output:
	// usage error: test usage error
	//
	// test command
	//
	// USAGE:
	// parent command
	//
	// FLAGS
	//   -h, --help   Prints this usage information
}
