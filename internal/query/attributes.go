package query

import (
	"errors"
	"regexp"
	"strings"

	"github.com/forumhive/forum-api/internal/models"
)

// AttributeOptions tunes Attributes. The zero value drops relationship
// attributes and returns the schema's declared names unchanged.
type AttributeOptions struct {
	Exclude       []string          // names to drop, applied last
	Add           []string          // synthetic names appended after the declared ones
	Replace       map[string]string // rename map, applied first (old name -> new name)
	KeepRelations bool              // keep relationship attributes instead of dropping them
}

// Attributes computes the exposable attribute names for an entity schema.
// Order of operations: renames, then relation drop, then Add, then Exclude.
// The ordering matters: a renamed attribute can only be excluded under its
// new name.
func Attributes(schema models.Schema, opts AttributeOptions) []string {
	attrs := make([]string, 0, len(schema.Fields)+len(opts.Add))
	for _, f := range schema.Fields {
		if f.Relation && !opts.KeepRelations {
			continue
		}
		name := f.Name
		if renamed, ok := opts.Replace[f.Name]; ok {
			name = renamed
		}
		attrs = append(attrs, name)
	}

	attrs = append(attrs, opts.Add...)

	if len(opts.Exclude) == 0 {
		return attrs
	}
	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = struct{}{}
	}
	kept := attrs[:0]
	for _, name := range attrs {
		if _, drop := excluded[name]; !drop {
			kept = append(kept, name)
		}
	}
	return kept
}

// ErrInvalidFilter is returned for a filter expression naming an attribute
// the entity does not expose.
var ErrInvalidFilter = errors.New("invalid attribute filter")

// FilterTerm is one attribute of a parsed filter expression. Or reports how
// the term combines with the previous one (false means AND).
type FilterTerm struct {
	Attr string
	Or   bool
}

var filterConnector = regexp.MustCompile(`And|Or`)

// ParseFilter splits a filter expression such as "gender", "idOremail" or
// "genderAndcountry_of_birth" into terms, validating every attribute against
// the schema.
func ParseFilter(schema models.Schema, expr string) ([]FilterTerm, error) {
	connectors := filterConnector.FindAllString(expr, -1)
	parts := filterConnector.Split(expr, -1)

	terms := make([]FilterTerm, 0, len(parts))
	for i, part := range parts {
		attr := strings.ToLower(strings.TrimSpace(part))
		if attr != "id" && !schema.Has(attr) {
			return nil, ErrInvalidFilter
		}
		term := FilterTerm{Attr: attr}
		if i > 0 {
			term.Or = connectors[i-1] == "Or"
		}
		terms = append(terms, term)
	}
	return terms, nil
}
