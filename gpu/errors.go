package gpu

import "errors"

var (
	ErrInvalidSize    = errors.New("gpu: buffer size must be positive")
	ErrOutOfBounds    = errors.New("gpu: write exceeds buffer bounds")
	ErrBufferReleased = errors.New("gpu: buffer already released")
	ErrProviderClosed = errors.New("gpu: provider closed")
)
