package entity

import "errors"

// Error taxonomy surfaced by the usecase layer. Handlers map these to HTTP
// statuses with errors.Is; everything else is treated as ErrServiceFailure.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrServiceFailure  = errors.New("service failure")
)
