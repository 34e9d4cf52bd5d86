package errcode

import (
	"github.com/pkg/errors"
)

const (
	CodeInvalidArgument = "EINVAL"
	CodeInvalidSelector = "ESELECTOR"
	CodeUnknown         = "EUNKNOWN"
)

var (
	ErrInvalidArgument = New("invalid argument", CodeInvalidArgument)
	ErrInvalidSelector = New("invalid selector", CodeInvalidSelector)
)

type Error interface {
	error
	Message() string
	Code() string
}

type codedErr struct {
	error
	code string
}

func New(message, code string) Error {
	return WrapErr(errors.New(message), code)
}

func WrapErr(err error, code string) Error {
	return &codedErr{
		error: err,
		code:  code,
	}
}

func (e *codedErr) Message() string {
	return e.Error()
}

func (e *codedErr) Code() string {
	return e.code
}

func (e *codedErr) Unwrap() error {
	return e.error
}

// Code returns the code of the first coded error in err's chain.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var coded Error
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return CodeUnknown
}

// InvalidArgument annotates ErrInvalidArgument with a formatted reason.
func InvalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// InvalidSelector annotates ErrInvalidSelector with the offending selector and parse failure.
func InvalidSelector(selector string, cause error) error {
	return errors.Wrapf(ErrInvalidSelector, "%q: %v", selector, cause)
}
