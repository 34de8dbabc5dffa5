// Package errs defines the error kinds shared by the rental domain.
//
// Every domain error is a sentinel with a stable message. errors.Is matches
// both the sentinel itself and its kind, so adapters can branch on the kind
// while tests assert on the exact text.
package errs

import "errors"

// Виды ошибок домена.
var (
	// ErrValidation - значение атрибута нарушает локальное ограничение.
	ErrValidation = errors.New("validation failed")
	// ErrDomainRule - нарушено правило, связывающее несколько сущностей.
	ErrDomainRule = errors.New("domain rule violated")
	// ErrNotFound - запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Validation создает ошибку вида ErrValidation с сообщением msg.
func Validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// Rule создает ошибку вида ErrDomainRule с сообщением msg.
func Rule(msg string) error {
	return &kindError{kind: ErrDomainRule, msg: msg}
}

// NotFound создает ошибку вида ErrNotFound с сообщением msg.
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}
