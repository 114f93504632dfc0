package emitter

import "errors"

var (
	ErrInvalidParameter = errors.New("emitter: invalid parameter")
)
