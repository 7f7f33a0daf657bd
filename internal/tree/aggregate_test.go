package tree

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forumhive/forum-api/internal/models"
	"github.com/forumhive/forum-api/internal/query"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(&models.Person{}, &models.Comment{}, &models.Vote{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return database
}

func seedPerson(t *testing.T, database *gorm.DB, first, last string) models.Person {
	t.Helper()
	born, _ := time.Parse("2006-01-02", "1990-01-01")
	person := models.Person{
		FirstName:      first,
		LastName:       last,
		Gender:         models.GenderOther,
		DateOfBirth:    born,
		CountryOfBirth: "Egypt",
	}
	if err := database.Create(&person).Error; err != nil {
		t.Fatalf("failed to seed person: %v", err)
	}
	return person
}

func seedComment(t *testing.T, database *gorm.DB, userID int64, parentID, topParentID *int64, content string) models.Comment {
	t.Helper()
	comment := models.Comment{
		UserID:      userID,
		ParentID:    parentID,
		TopParentID: topParentID,
		Content:     content,
	}
	if err := database.Create(&comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}
	return comment
}

func seedVote(t *testing.T, database *gorm.DB, userID, commentID int64) {
	t.Helper()
	if err := database.Create(&models.Vote{UserID: userID, CommentID: commentID}).Error; err != nil {
		t.Fatalf("failed to seed vote: %v", err)
	}
}

func rowInt(t *testing.T, row Row, key string) int64 {
	t.Helper()
	n, ok := asInt64(row[key])
	if !ok {
		t.Fatalf("row[%q] = %v (%T), not numeric", key, row[key], row[key])
	}
	return n
}

func TestDetailAnnotations(t *testing.T) {
	database := newTestDB(t)
	aggregator := NewAggregator(database)
	ctx := context.Background()

	owner := seedPerson(t, database, "Shalom", "Handes")
	voter := seedPerson(t, database, "Marietta", "Incoll")
	other := seedPerson(t, database, "Dorisa", "Pennaman")

	root := seedComment(t, database, owner.ID, nil, nil, "root")
	seedComment(t, database, voter.ID, &root.ID, &root.ID, "first reply")
	seedComment(t, database, other.ID, &root.ID, &root.ID, "second reply")
	seedVote(t, database, voter.ID, root.ID)
	seedVote(t, database, other.ID, root.ID)

	row, err := aggregator.Detail(ctx, root.ID)
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if row == nil {
		t.Fatal("Detail returned nil for an existing comment")
	}

	if got := rowInt(t, row, "votes"); got != 2 {
		t.Errorf("votes = %d, want 2", got)
	}
	if got := rowInt(t, row, "nb_children"); got != 2 {
		t.Errorf("nb_children = %d, want 2", got)
	}
	if got := row["owner_fullname"]; got != "Shalom Handes" {
		t.Errorf("owner_fullname = %v, want Shalom Handes", got)
	}
	if got := row["content"]; got != "root" {
		t.Errorf("content = %v, want root", got)
	}
}

func TestDetailMissingComment(t *testing.T) {
	database := newTestDB(t)
	aggregator := NewAggregator(database)

	row, err := aggregator.Detail(context.Background(), 999)
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if row != nil {
		t.Fatalf("expected nil for a missing comment, got %v", row)
	}
}

func TestChildrenDepth(t *testing.T) {
	database := newTestDB(t)
	aggregator := NewAggregator(database)
	ctx := context.Background()

	owner := seedPerson(t, database, "Claudius", "Orteaux")
	root := seedComment(t, database, owner.ID, nil, nil, "root")
	reply := seedComment(t, database, owner.ID, &root.ID, &root.ID, "reply")
	seedComment(t, database, owner.ID, &reply.ID, &root.ID, "nested")

	order := query.OrderSpec{Attr: "id"}

	shallow, err := aggregator.Children(ctx, root.ID, order, false)
	if err != nil {
		t.Fatalf("Children(deep=false) failed: %v", err)
	}
	if len(shallow) != 1 {
		t.Fatalf("deep=false returned %d rows, want 1", len(shallow))
	}
	if got := rowInt(t, shallow[0], "id"); got != reply.ID {
		t.Errorf("deep=false row id = %d, want %d", got, reply.ID)
	}
	if got := rowInt(t, shallow[0], "nb_children"); got != 1 {
		t.Errorf("reply nb_children = %d, want 1", got)
	}

	deep, err := aggregator.Children(ctx, root.ID, order, true)
	if err != nil {
		t.Fatalf("Children(deep=true) failed: %v", err)
	}
	if len(deep) != 2 {
		t.Fatalf("deep=true returned %d rows, want 2", len(deep))
	}
	for _, row := range deep {
		if got := row["owner_fullname"]; got != "Claudius Orteaux" {
			t.Errorf("owner_fullname = %v, want Claudius Orteaux", got)
		}
	}
}
