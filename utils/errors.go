// utils/errors.go
package utils

import "errors"

var (
	ErrInvalidSessionID = errors.New("invalid form session id")
	ErrInvalidQuery     = errors.New("invalid query parameter")
)
