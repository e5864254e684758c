package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateEmail is returned by registration when the email is already in the directory.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrInvalidCredentials is returned by login when no directory entry matches.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAuthRequired is returned by checkout when the visitor is not signed in.
	ErrAuthRequired = errors.New("sign in to place an order")
	// ErrCartEmpty is returned by checkout when there is nothing to order.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrSubmissionInProgress is returned while an earlier submission of the same visitor is still processing.
	ErrSubmissionInProgress = errors.New("order submission already in progress")
	// ErrAlreadySubscribed is returned when the email is already on the newsletter list.
	ErrAlreadySubscribed = errors.New("this email is already subscribed")
	// ErrOrderNotFound is returned when no order with the number belongs to the session.
	ErrOrderNotFound = errors.New("order not found")
)

// ValidationError carries one inline message per offending field.
type ValidationError struct {
	Fields map[string]string
}

// Add records a message for field. The first message for a field is kept.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// OrNil returns nil when no field was recorded, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed on %s", strings.Join(fields, ", "))
}

// AuthError wraps an authentication failure with the form field it belongs to.
type AuthError struct {
	Field string
	Err   error
}

func (e *AuthError) Error() string { return e.Err.Error() }

func (e *AuthError) Unwrap() error { return e.Err }
