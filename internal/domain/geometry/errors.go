package geometry

import "errors"

// Sentinel error kinds for this package.
var (
	ErrMalformedGeometry = errors.New("malformed geometry")
	ErrInvalidDisplay    = errors.New("invalid display size")
)
