package loaders

import "errors"

var (
	ErrInvalidFile    = errors.New("loaders: invalid translation file")
	ErrInvalidConfig  = errors.New("loaders: invalid configuration")
	ErrRequestFailed  = errors.New("loaders: request failed")
	ErrAccessDenied   = errors.New("loaders: access denied")
	ErrUnexpectedCode = errors.New("loaders: unexpected status code")
)
