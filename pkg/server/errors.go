package server

import "errors"

var (
	ErrNamespaceNotFound = errors.New("server: namespace not found")
	ErrCheckFailed       = errors.New("server: check failed")
	ErrInternal          = errors.New("server: internal error")
)
