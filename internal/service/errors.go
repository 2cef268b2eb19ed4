package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput wraps every validation failure; the message names the field.
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
