package xr

import (
	"errors"
	"fmt"
)

var (
	ErrActionSetNotFound  = errors.New("xr: action set not found")
	ErrActionNotFound     = errors.New("xr: action not found")
	ErrActionTypeMismatch = errors.New("xr: action type mismatch")
	ErrSessionNotRunning  = errors.New("xr: session not running")
	ErrNotAttached        = errors.New("xr: action sets not attached")
	ErrAlreadyAttached    = errors.New("xr: action sets already attached")
	ErrDuplicateName      = errors.New("xr: duplicate name")
	ErrUnknownAction      = errors.New("xr: binding references unknown action")
)

// ActionQueryError reports a failed action lookup or state read.
type ActionQueryError struct {
	Set    string
	Action string
	Err    error
}

func (e *ActionQueryError) Error() string {
	return fmt.Sprintf("query %s/%s: %v", e.Set, e.Action, e.Err)
}

func (e *ActionQueryError) Unwrap() error {
	return e.Err
}
