package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/forumhive/forum-api/internal/query"
)

var (
	// ErrOwnerNotFound is returned when a referenced comment or vote owner
	// does not exist.
	ErrOwnerNotFound = errors.New("owner doesn't exist")

	// ErrCommentNotFound is returned when a vote references a comment that
	// does not exist.
	ErrCommentNotFound = errors.New("comment doesn't exist")
)

// EntityNotFoundError reports a missing entity by kind and ID.
type EntityNotFoundError struct {
	Kind string
	ID   int64
}

// Error implements the error interface
func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d doesn't exist", e.Kind, e.ID)
}

// StatusOf maps an error from the helper or repository layers to the HTTP
// status it is reported with. Nothing in the taxonomy is fatal.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, query.ErrInvalidSort),
		errors.Is(err, query.ErrInvalidPagination),
		errors.Is(err, query.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, ErrOwnerNotFound),
		errors.Is(err, ErrCommentNotFound):
		return http.StatusNotFound
	}

	var notFound *EntityNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
