package service

import (
	"errors"
	"strings"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409

	ErrInvalidCredentials = errors.New("invalid username or password") // 401
	ErrDisabled           = errors.New("account is disabled")          // 403
)

// Message strips the trailing sentinel from a wrapped error so the rest can
// be shown to the client: "product not found: not found" -> "product not found".
func Message(err error) string {
	msg := err.Error()
	for _, s := range []error{ErrValidation, ErrNotFound, ErrConflict} {
		msg = strings.TrimSuffix(msg, ": "+s.Error())
	}
	return msg
}
