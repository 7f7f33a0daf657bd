package tree

import (
	"reflect"
	"testing"

	"github.com/forumhive/forum-api/internal/models"
)

func TestDecorateOwnerNames(t *testing.T) {
	owners := []models.Owner{
		{ID: 1, FirstName: "John", LastName: "Doe"},
		{ID: 2, FirstName: "Jane", LastName: "Roe"},
	}

	t.Run("empty input returned unchanged", func(t *testing.T) {
		rows := []Row{}
		got := DecorateOwnerNames(rows, owners)
		if len(got) != 0 {
			t.Errorf("DecorateOwnerNames(empty) = %v, want empty", got)
		}
	})

	t.Run("decorates every row", func(t *testing.T) {
		rows := []Row{
			{"id": int64(10), "user_id": int64(1), "content": "hi"},
			{"id": int64(11), "user_id": int64(2), "content": "hello"},
			{"id": int64(12), "user_id": int64(1), "content": "again"},
		}
		got := DecorateOwnerNames(rows, owners)
		wantNames := []string{"John Doe", "Jane Roe", "John Doe"}
		for i, row := range got {
			if row["owner_fullname"] != wantNames[i] {
				t.Errorf("row %d owner_fullname = %v, want %q", i, row["owner_fullname"], wantNames[i])
			}
		}
		// input rows must not be mutated
		if _, decorated := rows[0]["owner_fullname"]; decorated {
			t.Error("DecorateOwnerNames mutated its input")
		}
	})

	t.Run("one row without user_id disables the whole batch", func(t *testing.T) {
		rows := []Row{
			{"id": int64(10), "user_id": int64(1)},
			{"id": int64(11)},
			{"id": int64(12), "user_id": int64(2)},
		}
		got := DecorateOwnerNames(rows, owners)
		if !reflect.DeepEqual(got, rows) {
			t.Errorf("expected batch unchanged, got %v", got)
		}
		for i, row := range got {
			if _, decorated := row["owner_fullname"]; decorated {
				t.Errorf("row %d was decorated despite malformed batch", i)
			}
		}
	})

	t.Run("stale owner reference gets placeholder", func(t *testing.T) {
		rows := []Row{
			{"id": int64(10), "user_id": int64(99)},
		}
		got := DecorateOwnerNames(rows, owners)
		if got[0]["owner_fullname"] != UnknownOwner {
			t.Errorf("owner_fullname = %v, want %q", got[0]["owner_fullname"], UnknownOwner)
		}
	})
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int64", int64(7), 7, true},
		{"int32", int32(7), 7, true},
		{"int", 7, 7, true},
		{"uint64", uint64(7), 7, true},
		{"float64", float64(7), 7, true},
		{"string", "7", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asInt64(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("asInt64(%v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
