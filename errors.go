package brief

import "github.com/hack-pad/brief/internal/errcode"

var (
	// ErrInvalidArgument is returned for arguments of the wrong shape: empty selectors or event types,
	// nil handlers or callbacks, and unsupported target or context kinds.
	ErrInvalidArgument = errcode.ErrInvalidArgument
	// ErrInvalidSelector is returned when a selector does not compile.
	ErrInvalidSelector = errcode.ErrInvalidSelector
)

// ErrorCode returns a short code for err, e.g. "EINVAL", or "" for a nil error.
func ErrorCode(err error) string {
	return errcode.Code(err)
}
