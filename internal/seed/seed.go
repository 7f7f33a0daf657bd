// Package seed inserts default data. Each record type is a tagged variant of
// a closed Kind enumeration with its own typed factory; nothing is dispatched
// by table-name strings. Insertion is sequential: persons first, then the
// comments that reference them, then votes.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/forumhive/forum-api/internal/models"
	"github.com/forumhive/forum-api/pkg/logging"
)

// Kind enumerates the seedable entity kinds.
type Kind int

const (
	KindPerson Kind = iota
	KindComment
	KindVote
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindComment:
		return "comment"
	case KindVote:
		return "vote"
	default:
		return "unknown"
	}
}

// Record is one seedable entry, tagged with its kind.
type Record interface {
	Kind() Kind
}

// PersonRecord seeds one Person row.
type PersonRecord struct {
	IsAdmin        bool
	FirstName      string
	LastName       string
	Email          string
	Gender         models.Gender
	Avatar         string
	Job            string
	Company        string
	DateOfBirth    string // YYYY-MM-DD
	CountryOfBirth string
}

// Kind implements Record
func (PersonRecord) Kind() Kind { return KindPerson }

// Model builds the Person entity for this record.
func (r PersonRecord) Model() (models.Person, error) {
	born, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return models.Person{}, fmt.Errorf("invalid date_of_birth %q: %w", r.DateOfBirth, err)
	}
	person := models.Person{
		IsAdmin:        r.IsAdmin,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Gender:         r.Gender,
		DateOfBirth:    born,
		CountryOfBirth: r.CountryOfBirth,
	}
	if r.Email != "" {
		email := r.Email
		person.Email = &email
	}
	if r.Avatar != "" {
		avatar := r.Avatar
		person.Avatar = &avatar
	}
	if r.Job != "" {
		job := r.Job
		person.Job = &job
	}
	if r.Company != "" {
		company := r.Company
		person.Company = &company
	}
	return person, nil
}

// CommentRecord seeds one Comment row. User, Parent and TopParent reference
// rows inserted earlier in the dataset.
type CommentRecord struct {
	User      int64
	Parent    *int64
	TopParent *int64
	Content   string
}

// Kind implements Record
func (CommentRecord) Kind() Kind { return KindComment }

// Model builds the Comment entity for this record.
func (r CommentRecord) Model() models.Comment {
	return models.Comment{
		UserID:      r.User,
		ParentID:    r.Parent,
		TopParentID: r.TopParent,
		Content:     r.Content,
	}
}

// VoteRecord seeds one Vote row.
type VoteRecord struct {
	User    int64
	Comment int64
}

// Kind implements Record
func (VoteRecord) Kind() Kind { return KindVote }

// Model builds the Vote entity for this record.
func (r VoteRecord) Model() models.Vote {
	return models.Vote{UserID: r.User, CommentID: r.Comment}
}

// Dataset groups seed records by kind, in insertion order.
type Dataset struct {
	Persons  []PersonRecord
	Comments []CommentRecord
	Votes    []VoteRecord
}

// Seeder inserts seed datasets
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a new seeder
func New(database *gorm.DB) *Seeder {
	return &Seeder{
		db:     database,
		logger: logging.WithComponent("seeder"),
	}
}

// Run inserts up to quantity records of every kind; -1 inserts everything.
func (s *Seeder) Run(ctx context.Context, data Dataset, quantity int) error {
	for _, record := range data.Persons[:clamp(quantity, len(data.Persons))] {
		if err := s.insert(ctx, record); err != nil {
			return err
		}
	}
	for _, record := range data.Comments[:clamp(quantity, len(data.Comments))] {
		if err := s.insert(ctx, record); err != nil {
			return err
		}
	}
	for _, record := range data.Votes[:clamp(quantity, len(data.Votes))] {
		if err := s.insert(ctx, record); err != nil {
			return err
		}
	}

	s.logger.Info("Seed data inserted",
		zap.Int("persons", clamp(quantity, len(data.Persons))),
		zap.Int("comments", clamp(quantity, len(data.Comments))),
		zap.Int("votes", clamp(quantity, len(data.Votes))))
	return nil
}

// insert dispatches a record to its typed factory
func (s *Seeder) insert(ctx context.Context, record Record) error {
	switch rec := record.(type) {
	case PersonRecord:
		person, err := rec.Model()
		if err != nil {
			return err
		}
		return s.db.WithContext(ctx).Create(&person).Error
	case CommentRecord:
		comment := rec.Model()
		return s.db.WithContext(ctx).Create(&comment).Error
	case VoteRecord:
		vote := rec.Model()
		return s.db.WithContext(ctx).Create(&vote).Error
	default:
		return fmt.Errorf("unsupported seed kind: %s", record.Kind())
	}
}

// clamp bounds the requested quantity to the dataset length; values below 1
// mean "everything".
func clamp(quantity, length int) int {
	if quantity < 1 || quantity > length {
		return length
	}
	return quantity
}
