package messaging

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrCallbackPanic   = errors.New("subscriber callback panicked")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func validateName(name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return invalidf("message name is empty")
	}
	return nil
}

func validateBus(b *Bus) error {
	if b == nil {
		return invalidf("nil bus")
	}
	return nil
}

// isNil reports whether val is nil, or a nil pointer, map, slice, channel, or func hidden in an interface.
func isNil(val any) bool {
	if val == nil {
		return true
	}
	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
