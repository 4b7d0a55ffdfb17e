package domain

import "errors"

var (
	// ErrArticleNotFound signals a missing article.
	ErrArticleNotFound = errors.New("article not found")
	// ErrUserNotFound signals a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidQuery signals rejected search parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")
	// ErrBackendUnavailable signals that the search backend cannot be reached.
	ErrBackendUnavailable = errors.New("search backend unavailable")
)
