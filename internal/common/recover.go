package common

import (
	"github.com/pkg/errors"
)

// CatchException stores a recovered panic in 'err'. Must be deferred directly.
func CatchException(err *error) {
	recoverErr := handleRecovery(recover())
	if recoverErr != nil {
		*err = recoverErr
	}
}

// CatchExceptionHandler passes a recovered panic to 'fn'. Must be deferred directly.
func CatchExceptionHandler(fn func(err error)) {
	err := handleRecovery(recover())
	if err != nil {
		fn(err)
	}
}

func handleRecovery(r interface{}) error {
	if r == nil {
		return nil
	}
	switch val := r.(type) {
	case error:
		return errors.WithStack(val)
	default:
		return errors.Errorf("%+v", val)
	}
}
