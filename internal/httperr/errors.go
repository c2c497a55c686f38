package httperr

import (
	"errors"
	"fmt"
)

// ValidationError is a user-correctable rejection. Code is machine readable,
// Reason is the message shown to the user.
type ValidationError struct {
	Code   string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func ErrValidation(code, reason string) error {
	return ValidationError{Code: code, Reason: reason}
}

func IsValidation(err error, code string) bool {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Code == code
	}
	return false
}

// NotFoundError reports a missing (or inactive) entity.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e NotFoundError) Code() string {
	return e.Entity + "_not_found"
}

func ErrNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

// IsNotFound matches any NotFoundError when entity is empty.
func IsNotFound(err error, entity string) bool {
	var nf NotFoundError
	if errors.As(err, &nf) {
		return entity == "" || nf.Entity == entity
	}
	return false
}
