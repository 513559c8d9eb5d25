package replay

import "errors"

// Sentinel kinds for replay errors.
var (
	ErrMalformedLine = errors.New("malformed frame line")
	ErrNoInput       = errors.New("no input: pass -input or -synthetic")
)
