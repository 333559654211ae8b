package types

import (
	"errors"
	"fmt"
)

const AutoModeGuidance = "Auto mode requires a LeetCode username. Use `/register` or select manual mode."

var (
	ErrAutoModeUnavailable = errors.New("auto mode requires a registered leetcode username")
	ErrSessionNotFound     = errors.New("session not found or expired")
	ErrInvalidTransition   = errors.New("invalid session transition")
	ErrSessionOwner        = errors.New("session belongs to another user")
	ErrUserNotFound        = errors.New("user not found")
	ErrAlreadyRegistered   = errors.New("user already registered")
)

// ValidationError reports input the user has to fix. It is terminal for the
// invocation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FetchError wraps a judge proxy failure. Error keeps the upstream text.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsFetch(err error) bool {
	var f *FetchError
	return errors.As(err, &f)
}
