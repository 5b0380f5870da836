package errors

import (
	"errors"
	"strings"
)

// Graph error codes. They share the GRAPH_ prefix so callers can match the
// whole category with [IsGraph].
const (
	ErrCodeNegativeCycle  Code = "GRAPH_NEGATIVE_CYCLE"
	ErrCodeNegativeWeight Code = "GRAPH_NEGATIVE_WEIGHT"
	ErrCodeNotAcyclic     Code = "GRAPH_NOT_ACYCLIC"
)

const graphPrefix = "GRAPH_"

// Kind is a graph-algorithm failure category. Each kind builds [*Error]
// values with no message, with a message, or with a message and a cause.
type Kind struct {
	code       Code
	defaultMsg string
}

// Graph error kinds raised by shortest-path and ordering algorithms.
var (
	NegativeCycle  = Kind{code: ErrCodeNegativeCycle, defaultMsg: "graph contains a negative cycle"}
	NegativeWeight = Kind{code: ErrCodeNegativeWeight, defaultMsg: "negative edge weight encountered"}
	NotAcyclic     = Kind{code: ErrCodeNotAcyclic, defaultMsg: "graph is not acyclic"}
)

// Code returns the error code shared by all errors of this kind.
func (k Kind) Code() Code { return k.code }

// New returns an error of this kind with the kind's default message.
func (k Kind) New() *Error {
	return &Error{Code: k.code, Message: k.defaultMsg}
}

// WithMessage returns an error of this kind with msg.
func (k Kind) WithMessage(msg string) *Error {
	return &Error{Code: k.code, Message: msg}
}

// Wrap returns an error of this kind with msg wrapping cause.
func (k Kind) Wrap(msg string, cause error) *Error {
	return &Error{Code: k.code, Message: msg, Cause: cause}
}

// IsGraph reports whether any *Error in err's chain carries a graph error code.
func IsGraph(err error) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if strings.HasPrefix(string(e.Code), graphPrefix) {
			return true
		}
		err = e.Cause
	}
	return false
}
