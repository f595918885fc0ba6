package graph

import "errors"

// Error taxonomy shared by graph construction and the solver.
var (
	ErrNilInput        = errors.New("nil input")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrInvalidData     = errors.New("invalid data")
)
