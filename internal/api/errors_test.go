package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/forumhive/forum-api/internal/query"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid sort", query.ErrInvalidSort, http.StatusBadRequest},
		{"invalid pagination", query.ErrInvalidPagination, http.StatusBadRequest},
		{"invalid filter", query.ErrInvalidFilter, http.StatusBadRequest},
		{"owner not found", ErrOwnerNotFound, http.StatusNotFound},
		{"comment not found", ErrCommentNotFound, http.StatusNotFound},
		{"entity not found", &EntityNotFoundError{Kind: "User", ID: 3}, http.StatusNotFound},
		{"wrapped entity not found", fmt.Errorf("delete: %w", &EntityNotFoundError{Kind: "Vote", ID: 9}), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.expected {
				t.Errorf("StatusOf(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestEntityNotFoundErrorMessage(t *testing.T) {
	err := &EntityNotFoundError{Kind: "Comment", ID: 42}
	want := "Comment with ID 42 doesn't exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
