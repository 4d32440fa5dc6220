package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors the handler layer maps onto HTTP statuses. ErrInvalid tags
// user-correctable input failures: the handler returns their message verbatim
// as a 400. Anything that matches none of these is an infrastructure error
// and must never reach the client.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("access denied")
	ErrInvalid   = errors.New("invalid request")
)

type invalidError struct{ msg string }

func (e invalidError) Error() string { return e.msg }

func (invalidError) Is(target error) bool { return target == ErrInvalid }

func invalid(msg string) error { return invalidError{msg: msg} }

func invalidf(format string, args ...interface{}) error {
	return invalidError{msg: fmt.Sprintf(format, args...)}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
