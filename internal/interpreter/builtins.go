package interpreter

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// library returns the native function library installed into the global
// frame of every new interpreter.
func library() map[string]*Native {
	return map[string]*Native{
		"clock": {name: "clock", arity: 0, fn: builtinClock},
		"uuid":  {name: "uuid", arity: 0, fn: builtinUUID},
	}
}

// builtinClock is the implementation of the 'clock' native, it returns the
// current wall-clock time in seconds since the Unix epoch.
func builtinClock(args []Value) (Value, error) {
	return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}

// builtinUUID is the implementation of the 'uuid' native, it returns a new
// random UUID as a string.
func builtinUUID(args []Value) (Value, error) {
	uid, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate a new uuid: %w", err)
	}

	return String(uid.String()), nil
}
