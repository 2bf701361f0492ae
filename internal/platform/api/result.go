// Package api is the single gateway to the record service. Every request
// goes through a Channel, which attaches the static credentials and converts
// any outcome (network fault, non-2xx status, undecodable body) into a
// Failure value. Callers branch on the shape of the returned Result; nothing
// past this boundary propagates a transport error.
package api

import (
	"sort"
	"strings"
)

// GenericMessage is the fallback shown when the service reports a failure
// without a usable message body.
const GenericMessage = "An error occurred"

// Failure is the uniform error shape the service emits on non-2xx responses:
// {success:false, message, error, errors}. ErrCode carries the short machine
// code ("error" on the wire), Errors the per-field validation map; both are
// nil when the service omits them.
type Failure struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	ErrCode *string           `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// Error implements the error interface so engines can surface a Failure
// directly to callers that reject a pending commit.
func (f *Failure) Error() string {
	return f.Message
}

// composeMessage appends the field validation pairs to the base message,
// comma-joined in sorted field order: "Bad request: firstName: required".
func composeMessage(message string, errors map[string]string) string {
	if message == "" {
		message = GenericMessage
	}
	if len(errors) == 0 {
		return message
	}
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	pairs := make([]string, 0, len(fields))
	for _, field := range fields {
		pairs = append(pairs, field+": "+errors[field])
	}
	return message + ": " + strings.Join(pairs, ", ")
}

// Result is a discriminated union: either the decoded success payload or a
// Failure, never both. The zero Result is a success holding T's zero value.
type Result[T any] struct {
	value   T
	failure *Failure
}

// OK wraps a success payload.
func OK[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps a Failure. A nil failure is normalized to a generic one so the
// failed branch always carries a non-empty message.
func Fail[T any](failure *Failure) Result[T] {
	if failure == nil {
		failure = &Failure{Message: GenericMessage}
	}
	return Result[T]{failure: failure}
}

// Failure returns the failure and true when the result is the failed branch.
func (r Result[T]) Failure() (*Failure, bool) {
	return r.failure, r.failure != nil
}

// Value returns the success payload; T's zero value on the failed branch.
func (r Result[T]) Value() T {
	return r.value
}
