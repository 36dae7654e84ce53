package errorz

import "errors"

var (
	NotFound           = errors.New("not found")
	EmptyTitle         = errors.New("title must not be empty")
	InvalidDeadline    = errors.New("deadline must be a UTC instant with an explicit offset")
	InvalidCredentials = errors.New("invalid credentials")
	EmailTaken         = errors.New("email already registered")
	InvalidCategory    = errors.New("category is not persistable")
)
