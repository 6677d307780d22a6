package validation

import (
	"fmt"
	"strings"
)

// Error is a validation failure carrying per-field messages. It reports which
// fields were rejected so the caller can surface them next to the inputs.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
