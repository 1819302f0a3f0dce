package media

import "errors"

var (
	ErrInvalidDataURI   = errors.New("invalid data uri")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
	ErrFetchFailed      = errors.New("image fetch failed")
)
