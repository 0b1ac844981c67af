package database

import (
	"errors"
	"fmt"
)

// 存储层错误分类，handler 通过 errors.Is 映射为 HTTP 状态码
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("inactive user")
	ErrInvalidToken       = errors.New("invalid token")
)

// Error carries a client-facing message and the category it belongs to.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(entity string) error {
	return newError(ErrNotFound, "%s not found", entity)
}
