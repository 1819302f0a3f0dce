package draft

import "errors"

var (
	ErrSingleSelect   = errors.New("category accepts a single selection")
	ErrStepOutOfRange = errors.New("program step index out of range")
)
