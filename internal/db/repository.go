package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/forumhive/forum-api/internal/models"
	"github.com/forumhive/forum-api/internal/query"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PersonRepository provides person-related database operations
type PersonRepository struct {
	*Repository
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(repo *Repository) *PersonRepository {
	return &PersonRepository{Repository: repo}
}

// List retrieves one sorted page of persons
func (r *PersonRepository) List(ctx context.Context, order query.OrderSpec, limit, offset int) ([]models.Person, error) {
	var persons []models.Person
	err := r.db.WithContext(ctx).
		Order(order.Clause()).
		Limit(limit).
		Offset(offset).
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

// Count returns the total number of persons
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Person{}).Count(&count).Error
	return count, err
}

// GetByID retrieves a person by ID
func (r *PersonRepository) GetByID(ctx context.Context, id int64) (*models.Person, error) {
	var person models.Person
	if err := r.db.WithContext(ctx).First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

// Owners retrieves the (id, first name, last name) projection for the given
// person IDs in one bulk lookup
func (r *PersonRepository) Owners(ctx context.Context, ids []int64) ([]models.Owner, error) {
	var owners []models.Owner
	err := r.db.WithContext(ctx).
		Model(&models.Person{}).
		Select("id", "first_name", "last_name").
		Where("id IN ?", ids).
		Find(&owners).Error
	if err != nil {
		return nil, err
	}
	return owners, nil
}

// FilterByAttributes retrieves persons matching the parsed filter terms, all
// compared against the same value, combined left to right with AND/OR
func (r *PersonRepository) FilterByAttributes(ctx context.Context, terms []query.FilterTerm, value string) ([]models.Person, error) {
	tx := r.db.WithContext(ctx).Model(&models.Person{})
	for i, term := range terms {
		clause := fmt.Sprintf("%s = ?", term.Attr)
		arg := filterValue(term.Attr, value)
		if i > 0 && term.Or {
			tx = tx.Or(clause, arg)
		} else {
			tx = tx.Where(clause, arg)
		}
	}

	var persons []models.Person
	if err := tx.Order("id").Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

// filterValue coerces the raw path value for integer columns so postgres
// does not reject a text parameter against a bigint column.
func filterValue(attr, value string) any {
	if attr == "id" || strings.HasSuffix(attr, "_id") {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return value
}

// Create creates a new person
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

// Update updates a person
func (r *PersonRepository) Update(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Save(person).Error
}

// Delete deletes a person
func (r *PersonRepository) Delete(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Delete(person).Error
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// List retrieves one sorted page of comments
func (r *CommentRepository) List(ctx context.Context, order query.OrderSpec, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Order(order.Clause()).
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Count returns the total number of comments
func (r *CommentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// ListByUser retrieves all comments owned by a user
func (r *CommentRepository) ListByUser(ctx context.Context, userID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Update updates a comment
func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete deletes a comment
func (r *CommentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Delete(comment).Error
}

// ErrParentNotFound is returned by ResolveTopParent when the parent chain
// references a comment that does not exist. Callers treat it as client
// error; anything else from the walk is an infrastructure failure.
var ErrParentNotFound = errors.New("parent comment doesn't exist")

// ResolveTopParent walks the parent chain from the given comment up to the
// root and returns the root's ID. Keeps top_parent correct when a comment is
// created under, or moved under, a reply rather than a root.
func (r *CommentRepository) ResolveTopParent(ctx context.Context, parentID int64) (int64, error) {
	seen := map[int64]struct{}{}
	current := parentID
	for {
		if _, ok := seen[current]; ok {
			return 0, fmt.Errorf("comment %d is part of a parent cycle", current)
		}
		seen[current] = struct{}{}

		comment, err := r.GetByID(ctx, current)
		if err != nil {
			return 0, err
		}
		if comment == nil {
			return 0, fmt.Errorf("comment %d: %w", current, ErrParentNotFound)
		}
		if comment.ParentID == nil {
			return comment.ID, nil
		}
		current = *comment.ParentID
	}
}

// VoteRepository provides vote-related database operations
type VoteRepository struct {
	*Repository
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(repo *Repository) *VoteRepository {
	return &VoteRepository{Repository: repo}
}

// List retrieves one sorted page of votes, optionally filtered by column
func (r *VoteRepository) List(ctx context.Context, order query.OrderSpec, limit, offset int, filter map[string]any) ([]models.Vote, error) {
	tx := r.db.WithContext(ctx).Model(&models.Vote{})
	for column, value := range filter {
		tx = tx.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var votes []models.Vote
	err := tx.Order(order.Clause()).
		Limit(limit).
		Offset(offset).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// Count returns the number of votes matching the optional filter
func (r *VoteRepository) Count(ctx context.Context, filter map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Vote{})
	for column, value := range filter {
		tx = tx.Where(fmt.Sprintf("%s = ?", column), value)
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

// GetByID retrieves a vote by ID
func (r *VoteRepository) GetByID(ctx context.Context, id int64) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).First(&vote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// Delete deletes a vote
func (r *VoteRepository) Delete(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Delete(vote).Error
}

// Toggle creates a vote for the (user, comment) pair or removes the existing
// one. The read and the conditional write run in a single transaction, and
// the unique index on (user_id, comment_id) rejects a duplicate should two
// toggles race past the read; the loser retries once, finds the winner's row
// and removes it, so a race still resolves to a toggle outcome. Returns the
// created or removed vote and the post-operation count for the pair (0 or 1).
func (r *VoteRepository) Toggle(ctx context.Context, userID, commentID int64) (created bool, vote models.Vote, count int64, err error) {
	for attempt := 0; ; attempt++ {
		created, vote, err = r.toggleOnce(ctx, userID, commentID)
		if err == nil {
			break
		}
		if attempt > 0 || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, models.Vote{}, 0, err
		}
	}

	err = r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return created, vote, count, err
}

func (r *VoteRepository) toggleOnce(ctx context.Context, userID, commentID int64) (created bool, vote models.Vote, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		findErr := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			First(&existing).Error
		if findErr == nil {
			vote = existing
			return tx.Delete(&existing).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		vote = models.Vote{UserID: userID, CommentID: commentID}
		created = true
		return tx.Create(&vote).Error
	})
	if err != nil {
		return false, models.Vote{}, err
	}
	return created, vote, nil
}
