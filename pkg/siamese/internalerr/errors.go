package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrSyntax        = errors.New("syntax error")
	ErrInvalidConfig = errors.New("invalid configuration")
)
