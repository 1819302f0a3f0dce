package audit

import "errors"

var ErrDisabled = errors.New("audit journal is disabled")
