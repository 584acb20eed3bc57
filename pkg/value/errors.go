package value

import (
	"slices"
	"strings"
)

// Errors accumulates error messages in the order they were reported. The
// has-errors flag is updated with every append and cleared only by Reset.
type Errors struct {
	msgs []string
	has  bool
}

// Add appends one message.
func (e *Errors) Add(msg string) {
	e.msgs = append(e.msgs, msg)
	e.has = true
}

// Merge appends msgs in order.
func (e *Errors) Merge(msgs []string) {
	for _, m := range msgs {
		e.Add(m)
	}
}

// Reset drops all messages.
func (e *Errors) Reset() {
	e.msgs = nil
	e.has = false
}

// HasErrors reports whether at least one message was added since the last
// Reset.
func (e *Errors) HasErrors() bool {
	return e.has
}

// Len returns the number of messages.
func (e *Errors) Len() int {
	return len(e.msgs)
}

// List returns a copy of the messages.
func (e *Errors) List() []string {
	return slices.Clone(e.msgs)
}

// Join concatenates the messages with sep.
func (e *Errors) Join(sep string) string {
	return strings.Join(e.msgs, sep)
}
