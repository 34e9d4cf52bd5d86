package listener

import "github.com/hack-pad/brief/internal/errcode"

var (
	ErrInvalidArgument = errcode.ErrInvalidArgument
	ErrInvalidSelector = errcode.ErrInvalidSelector
)
