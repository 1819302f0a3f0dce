package trip

import "errors"

var (
	ErrNotFound          = errors.New("trip not found")
	ErrMissingID         = errors.New("trip id is required")
	ErrKindMismatch      = errors.New("trip kind does not match the operation")
	ErrInvalidLengthType = errors.New("invalid trip length type")
	ErrEmptyResult       = errors.New("upstream returned no trip")
)
