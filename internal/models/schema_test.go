package models

import "testing"

func TestSchemaNames(t *testing.T) {
	names := VoteSchema.Names()
	expected := []string{"id", "comment", "comment_id", "user", "user_id"}
	if len(names) != len(expected) {
		t.Fatalf("VoteSchema.Names() = %v, want %v", names, expected)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("VoteSchema.Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestSchemaHas(t *testing.T) {
	tests := []struct {
		name     string
		schema   Schema
		attr     string
		expected bool
	}{
		{"person plain attribute", PersonSchema, "first_name", true},
		{"comment foreign key id", CommentSchema, "user_id", true},
		{"comment relation is not exposable", CommentSchema, "user", false},
		{"unknown attribute", PersonSchema, "reputation", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.schema.Has(tt.attr); got != tt.expected {
				t.Errorf("Has(%q) = %v, want %v", tt.attr, got, tt.expected)
			}
		})
	}
}

func TestOwnerFullname(t *testing.T) {
	o := Owner{ID: 1, FirstName: "John", LastName: "Doe"}
	if o.Fullname() != "John Doe" {
		t.Errorf("Fullname() = %q, want %q", o.Fullname(), "John Doe")
	}
}
