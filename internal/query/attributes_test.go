package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/forumhive/forum-api/internal/models"
)

func TestAttributesDefaults(t *testing.T) {
	got := Attributes(models.CommentSchema, AttributeOptions{})
	want := []string{"id", "user_id", "parent_id", "top_parent_id", "added", "edited", "content"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Attributes(CommentSchema) = %v, want %v", got, want)
	}
}

func TestAttributesKeepRelations(t *testing.T) {
	got := Attributes(models.VoteSchema, AttributeOptions{KeepRelations: true})
	want := []string{"id", "comment", "comment_id", "user", "user_id"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Attributes(VoteSchema, KeepRelations) = %v, want %v", got, want)
	}
}

func TestAttributesReplaceAddExclude(t *testing.T) {
	got := Attributes(models.PersonSchema, AttributeOptions{
		Replace: map[string]string{"first_name": "name"},
		Add:     []string{"full_name"},
		Exclude: []string{"last_name"},
	})
	want := []string{
		"id", "is_admin", "name", "email", "gender", "avatar",
		"job", "company", "date_of_birth", "country_of_birth", "full_name",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Attributes(PersonSchema, opts) = %v, want %v", got, want)
	}
}

func TestAttributesExcludeUsesNewName(t *testing.T) {
	// A renamed attribute can only be excluded under its new name.
	got := Attributes(models.PersonSchema, AttributeOptions{
		Replace: map[string]string{"first_name": "name"},
		Exclude: []string{"first_name"},
	})
	for _, attr := range got {
		if attr == "first_name" {
			t.Fatalf("renamed attribute should not appear under old name: %v", got)
		}
	}
	found := false
	for _, attr := range got {
		if attr == "name" {
			found = true
		}
	}
	if !found {
		t.Errorf("excluding the old name must not drop the renamed attribute: %v", got)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    []FilterTerm
		wantErr bool
	}{
		{"single attribute", "email", []FilterTerm{{Attr: "email"}}, false},
		{"or combination", "idOremail", []FilterTerm{{Attr: "id"}, {Attr: "email", Or: true}}, false},
		{"and combination", "genderAndcountry_of_birth", []FilterTerm{{Attr: "gender"}, {Attr: "country_of_birth"}}, false},
		{"unknown attribute", "reputation", nil, true},
		{"unknown attribute in combination", "genderAndreputation", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(models.PersonSchema, tt.expr)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFilter) {
					t.Fatalf("ParseFilter(%q) error = %v, want ErrInvalidFilter", tt.expr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilter(%q) unexpected error: %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFilter(%q) = %+v, want %+v", tt.expr, got, tt.want)
			}
		})
	}
}
