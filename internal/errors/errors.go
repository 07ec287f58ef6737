// internal/errors/errors.go
package appErrors

import (
    "fmt"
    "sort"
    "strings"
)

// ValidationError carries one message per failing form field.
type ValidationError struct {
    Fields map[string]string
}

func (e *ValidationError) Error() string {
    keys := make([]string, 0, len(e.Fields))
    for k := range e.Fields {
        keys = append(keys, k)
    }
    sort.Strings(keys)

    parts := make([]string, 0, len(keys))
    for _, k := range keys {
        parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
    }
    return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(fields map[string]string) error {
    return &ValidationError{Fields: fields}
}

// GraphQLError holds the errors array of a GraphQL response.
type GraphQLError struct {
    Messages []string
}

// Error joins the messages the way they are shown to the user.
func (e *GraphQLError) Error() string {
    return strings.Join(e.Messages, ", ")
}

func NewGraphQLError(messages []string) error {
    return &GraphQLError{Messages: messages}
}

// TransportError wraps failures of the network or client layer.
// Message, when set, is the text shown to the user in place of Err's.
type TransportError struct {
    Message string
    Err     error
}

func (e *TransportError) Error() string {
    if e.Message != "" {
        return e.Message
    }
    return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
    return e.Err
}

func NewTransportError(err error) error {
    return &TransportError{Err: err}
}

func NewTransportErrorWithMessage(message string, err error) error {
    return &TransportError{Message: message, Err: err}
}
