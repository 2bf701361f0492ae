// Package notify is the user-visible notification surface. Engines report
// every operation outcome here; the CLI prints, tests capture.
package notify

import (
	"fmt"
	"io"
)

// Notifier receives the outcome messages of screen-level operations.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Console writes notifications as plain lines, errors prefixed so they stand
// out in a terminal session.
type Console struct {
	Out io.Writer
}

func (c *Console) Success(message string) {
	fmt.Fprintln(c.Out, message)
}

func (c *Console) Error(message string) {
	fmt.Fprintln(c.Out, "error: "+message)
}
