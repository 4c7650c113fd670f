package catalog

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidSeed     = errors.New("invalid seed")
)
