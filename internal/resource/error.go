package resource

import "errors"

var (
	ErrUnknownKind = errors.New("unknown resource kind")
	ErrReadOnly    = errors.New("resource kind is read-only")
	ErrMissingID   = errors.New("resource id is required")
	ErrNotFound    = errors.New("resource not found")
)
