package types

import "errors"

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Entity operation errors.
var (
	ErrNotFound   = errors.New("entity not found")
	ErrInvalidID  = errors.New("invalid entity ID")
	ErrEmptyTitle = errors.New("title must not be empty")
)
