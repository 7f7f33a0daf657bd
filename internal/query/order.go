// Package query implements the pagination, sorting and filtering helpers
// shared by every list endpoint: sort-expression validation against an
// entity schema, exposable-attribute computation, pagination guards and
// the next/previous page envelope.
package query

import (
	"errors"
	"strings"

	"github.com/forumhive/forum-api/internal/models"
)

var (
	// ErrInvalidSort is returned for a sort expression that does not match
	// attribute:asc or attribute:desc for the target entity.
	ErrInvalidSort = errors.New("invalid sort parameters")

	// ErrInvalidPagination is returned when offset < 0 or limit < 1.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// OrderSpec is a validated (attribute, direction) pair.
type OrderSpec struct {
	Attr string
	Desc bool
}

// Clause renders the spec as a SQL ORDER BY fragment. The attribute has
// already been validated against the entity schema, so the fragment is safe
// to hand to the query engine.
func (o OrderSpec) Clause() string {
	if o.Desc {
		return o.Attr + " DESC"
	}
	return o.Attr + " ASC"
}

// ValidOrder validates a sort expression of the form "attribute:direction"
// against the given schema. The attribute set is the schema's non-relation
// attributes unioned with "id"; matching is case-insensitive and the
// direction must be asc or desc.
func ValidOrder(schema models.Schema, sort string) (OrderSpec, error) {
	if !strings.Contains(sort, ":") {
		return OrderSpec{}, ErrInvalidSort
	}

	parts := strings.SplitN(strings.ToLower(sort), ":", 2)
	attr, direction := parts[0], parts[1]

	if attr != "id" && !schema.Has(attr) {
		return OrderSpec{}, ErrInvalidSort
	}

	switch direction {
	case "asc":
		return OrderSpec{Attr: attr}, nil
	case "desc":
		return OrderSpec{Attr: attr, Desc: true}, nil
	default:
		return OrderSpec{}, ErrInvalidSort
	}
}

// ValidatePage rejects out-of-range pagination parameters. They are reported,
// never clamped.
func ValidatePage(limit, offset int) error {
	if offset < 0 || limit < 1 {
		return ErrInvalidPagination
	}
	return nil
}
