package models

// Field describes one exposable attribute of an entity. Relation marks
// relationship attributes (as opposed to their foreign-key id columns,
// which stay exposable).
type Field struct {
	Name     string
	Relation bool
}

// Schema is a static, ordered attribute descriptor for an entity type.
// Declared once per entity so the query helpers never need reflection.
type Schema struct {
	Entity string
	Fields []Field
}

// Names returns the declared attribute names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether name is a declared non-relation attribute.
func (s Schema) Has(name string) bool {
	for _, f := range s.Fields {
		if !f.Relation && f.Name == name {
			return true
		}
	}
	return false
}

// PersonSchema describes the exposable attributes of Person.
var PersonSchema = Schema{
	Entity: "person",
	Fields: []Field{
		{Name: "id"},
		{Name: "is_admin"},
		{Name: "first_name"},
		{Name: "last_name"},
		{Name: "email"},
		{Name: "gender"},
		{Name: "avatar"},
		{Name: "job"},
		{Name: "company"},
		{Name: "date_of_birth"},
		{Name: "country_of_birth"},
	},
}

// CommentSchema describes the exposable attributes of Comment.
var CommentSchema = Schema{
	Entity: "comment",
	Fields: []Field{
		{Name: "id"},
		{Name: "user", Relation: true},
		{Name: "user_id"},
		{Name: "parent", Relation: true},
		{Name: "parent_id"},
		{Name: "top_parent", Relation: true},
		{Name: "top_parent_id"},
		{Name: "added"},
		{Name: "edited"},
		{Name: "content"},
	},
}

// VoteSchema describes the exposable attributes of Vote.
var VoteSchema = Schema{
	Entity: "vote",
	Fields: []Field{
		{Name: "id"},
		{Name: "comment", Relation: true},
		{Name: "comment_id"},
		{Name: "user", Relation: true},
		{Name: "user_id"},
	},
}
