package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forumhive/forum-api/internal/models"
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

func TestVoteToggleSequence(t *testing.T) {
	database := newTestDB(t)
	votes := NewVoteRepository(NewRepository(database))
	ctx := context.Background()

	person := seedPerson(t, database, "Shalom", "Handes")
	comment := seedComment(t, database, person.ID, nil, nil, "first")

	created, vote, count, err := votes.Toggle(ctx, person.ID, comment.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !created || count != 1 {
		t.Errorf("first toggle: created=%v count=%d, want created=true count=1", created, count)
	}
	if vote.UserID != person.ID || vote.CommentID != comment.ID {
		t.Errorf("first toggle returned vote %+v", vote)
	}

	created, vote, count, err = votes.Toggle(ctx, person.ID, comment.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if created || count != 0 {
		t.Errorf("second toggle: created=%v count=%d, want created=false count=0", created, count)
	}
	if vote.CommentID != comment.ID {
		t.Errorf("second toggle should echo the removed vote, got %+v", vote)
	}

	created, _, count, err = votes.Toggle(ctx, person.ID, comment.ID)
	if err != nil {
		t.Fatalf("third toggle failed: %v", err)
	}
	if !created || count != 1 {
		t.Errorf("third toggle: created=%v count=%d, want created=true count=1", created, count)
	}
}

func TestVoteUniqueIndexRejectsDuplicate(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	person := seedPerson(t, database, "Marietta", "Incoll")
	comment := seedComment(t, database, person.ID, nil, nil, "first")

	first := models.Vote{UserID: person.ID, CommentID: comment.ID}
	if err := database.WithContext(ctx).Create(&first).Error; err != nil {
		t.Fatalf("first vote insert failed: %v", err)
	}

	duplicate := models.Vote{UserID: person.ID, CommentID: comment.ID}
	err := database.WithContext(ctx).Create(&duplicate).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestResolveTopParent(t *testing.T) {
	database := newTestDB(t)
	comments := NewCommentRepository(NewRepository(database))
	ctx := context.Background()

	person := seedPerson(t, database, "Dorisa", "Pennaman")
	root := seedComment(t, database, person.ID, nil, nil, "root")
	reply := seedComment(t, database, person.ID, &root.ID, &root.ID, "reply")
	nested := seedComment(t, database, person.ID, &reply.ID, &root.ID, "nested")

	got, err := comments.ResolveTopParent(ctx, nested.ID)
	if err != nil {
		t.Fatalf("ResolveTopParent failed: %v", err)
	}
	if got != root.ID {
		t.Errorf("ResolveTopParent(%d) = %d, want %d", nested.ID, got, root.ID)
	}

	got, err = comments.ResolveTopParent(ctx, root.ID)
	if err != nil {
		t.Fatalf("ResolveTopParent on root failed: %v", err)
	}
	if got != root.ID {
		t.Errorf("ResolveTopParent(root) = %d, want %d", got, root.ID)
	}
}

func TestResolveTopParentMissing(t *testing.T) {
	database := newTestDB(t)
	comments := NewCommentRepository(NewRepository(database))

	_, err := comments.ResolveTopParent(context.Background(), 999)
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("error = %v, want ErrParentNotFound", err)
	}
}

func TestResolveTopParentCycle(t *testing.T) {
	database := newTestDB(t)
	comments := NewCommentRepository(NewRepository(database))
	ctx := context.Background()

	person := seedPerson(t, database, "Claudius", "Orteaux")
	first := seedComment(t, database, person.ID, nil, nil, "first")
	second := seedComment(t, database, person.ID, &first.ID, &first.ID, "second")
	if err := database.Model(&models.Comment{}).Where("id = ?", first.ID).
		Update("parent_id", second.ID).Error; err != nil {
		t.Fatalf("failed to create cycle: %v", err)
	}

	_, err := comments.ResolveTopParent(ctx, first.ID)
	if err == nil {
		t.Fatal("expected an error for a parent cycle")
	}
	if errors.Is(err, ErrParentNotFound) {
		t.Fatalf("cycle reported as missing parent: %v", err)
	}
}

func TestCommentDeleteMissingRowUntouched(t *testing.T) {
	database := newTestDB(t)
	comments := NewCommentRepository(NewRepository(database))
	ctx := context.Background()

	person := seedPerson(t, database, "Rennie", "Scimonelli")
	seedComment(t, database, person.ID, nil, nil, "kept")

	got, err := comments.GetByID(ctx, 999)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a missing comment, got %+v", got)
	}

	total, err := comments.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 1 {
		t.Errorf("comment count = %d, want 1", total)
	}
}
