package errors

import (
	stderrors "errors"

	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
)

type CustomError struct {
	errType constant.ErrorType
	message string
	status  int
	fields  model.FieldErrors
	cause   error
}

func (c CustomError) Error() string {
	if c.message != "" {
		return c.message
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	if c.status != 0 {
		return c.status
	}
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

// Fields returns the per-field messages of a validation failure.
func (c CustomError) Fields() model.FieldErrors {
	return c.fields
}

func (c CustomError) Unwrap() error {
	return c.cause
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// WithMessage overrides the default message, e.g. with one sent by the server.
func (c CustomError) WithMessage(msg string) CustomError {
	c.message = msg
	return c
}

func (c CustomError) WithStatus(status int) CustomError {
	c.status = status
	return c
}

func (c CustomError) WithFields(fields model.FieldErrors) CustomError {
	c.fields = fields
	return c
}

func (c CustomError) WithCause(err error) CustomError {
	c.cause = err
	return c
}

// IsType reports whether err carries a CustomError of type t.
func IsType(err error, t constant.ErrorType) bool {
	var ce CustomError
	if !stderrors.As(err, &ce) {
		return false
	}
	return ce.errType == t
}

// UserMessage returns the text to show a user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce CustomError
	if stderrors.As(err, &ce) {
		return ce.Error()
	}
	return constant.MsgUnknownError
}
