package service

import "errors"

// Business errors returned by the services. Handlers map these onto HTTP
// status codes; anything not listed here surfaces as ErrInternalServer.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPostNotFound       = errors.New("post not found")
	ErrNotAuthor          = errors.New("you are not the author of this post")
	ErrInternalServer     = errors.New("internal server error")
)
