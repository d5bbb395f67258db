package repositories

import "errors"

// Typed failures raised by the store layer. The route layer decides the
// HTTP status; business logic never retries.
var (
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("actor is not allowed to perform this action")
	ErrSelfFollow = errors.New("users cannot follow themselves")
	ErrSelfChat   = errors.New("users cannot open a conversation with themselves")
	ErrDuplicate  = errors.New("record already exists")
)
