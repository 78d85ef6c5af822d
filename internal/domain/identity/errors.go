package identity

import "errors"

var (
	ErrMissingScope = errors.New("caller scope missing from request")
	ErrInvalidScope = errors.New("caller scope is invalid")
	ErrAccessDenied = errors.New("access to this employee's records is denied")
)
