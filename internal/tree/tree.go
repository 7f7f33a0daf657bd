// Package tree assembles comment-tree query results: reply retrieval via the
// parent / top_parent edges, vote and reply-count annotations, and owner
// display-name decoration performed in application code.
package tree

import (
	"context"

	"gorm.io/gorm"

	"github.com/forumhive/forum-api/internal/models"
	"github.com/forumhive/forum-api/internal/query"
	"github.com/forumhive/forum-api/pkg/telemetry"
)

// Row is one annotated comment record.
type Row = map[string]any

const annotatedColumns = "comments.id AS id, comments.user_id AS user_id, " +
	"comments.parent_id AS parent_id, comments.top_parent_id AS top_parent_id, " +
	"comments.added AS added, comments.edited AS edited, comments.content AS content, " +
	"COUNT(DISTINCT votes.id) AS votes, COUNT(DISTINCT replies.id) AS nb_children"

// Aggregator fetches annotated comment rows and decorates them with their
// owner's display name.
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new aggregator
func NewAggregator(database *gorm.DB) *Aggregator {
	return &Aggregator{db: database}
}

// Children returns the replies of the given comment, each annotated with its
// vote count and direct-reply count and decorated with the owner's full name.
//
// With deep false only immediate replies (parent_id = commentID) are
// returned. With deep true every descendant is returned in one query via the
// denormalized top_parent_id shortcut; no recursive traversal happens.
func (a *Aggregator) Children(ctx context.Context, commentID int64, order query.OrderSpec, deep bool) ([]Row, error) {
	ctx, span := telemetry.StartSpan(ctx, "tree.Children")
	defer span.End()

	edge := "comments.parent_id"
	if deep {
		edge = "comments.top_parent_id"
	}

	var rows []Row
	err := a.annotated(ctx).
		Where(edge+" = ?", commentID).
		Order("comments." + order.Clause()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return a.withOwnerNames(ctx, rows)
}

// Detail returns the single annotated, decorated row for a comment, or nil
// if the comment does not exist.
func (a *Aggregator) Detail(ctx context.Context, commentID int64) (Row, error) {
	var rows []Row
	err := a.annotated(ctx).
		Where("comments.id = ?", commentID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	rows, err = a.withOwnerNames(ctx, rows)
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (a *Aggregator) annotated(ctx context.Context) *gorm.DB {
	return a.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(annotatedColumns).
		Joins("LEFT JOIN votes ON votes.comment_id = comments.id").
		Joins("LEFT JOIN comments AS replies ON replies.parent_id = comments.id").
		Group("comments.id")
}

// withOwnerNames resolves the distinct owners of the given rows in one bulk
// lookup and appends owner_fullname to each row. Decoration is all or
// nothing: if any row lacks user_id the whole batch is returned untouched.
func (a *Aggregator) withOwnerNames(ctx context.Context, rows []Row) ([]Row, error) {
	if len(rows) == 0 {
		return rows, nil
	}

	seen := make(map[int64]struct{}, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		id, ok := asInt64(row["user_id"])
		if !ok {
			return rows, nil
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	var owners []models.Owner
	err := a.db.WithContext(ctx).
		Model(&models.Person{}).
		Select("id", "first_name", "last_name").
		Where("id IN ?", ids).
		Find(&owners).Error
	if err != nil {
		return nil, err
	}

	return DecorateOwnerNames(rows, owners), nil
}

// UnknownOwner is the placeholder full name used when a row references a
// user that no longer exists.
const UnknownOwner = "unknown owner"

// DecorateOwnerNames appends owner_fullname to every row whose user_id
// resolves through owners. Empty input, or any row without a usable user_id,
// returns the input unchanged — no partial decoration. A user_id that
// resolves to no owner gets the UnknownOwner placeholder instead of failing
// the batch.
func DecorateOwnerNames(rows []Row, owners []models.Owner) []Row {
	if len(rows) == 0 {
		return rows
	}

	names := make(map[int64]string, len(owners))
	for _, owner := range owners {
		names[owner.ID] = owner.Fullname()
	}

	decorated := make([]Row, 0, len(rows))
	for _, row := range rows {
		id, ok := asInt64(row["user_id"])
		if !ok {
			return rows
		}
		fullname, ok := names[id]
		if !ok {
			fullname = UnknownOwner
		}

		out := make(Row, len(row)+1)
		for key, value := range row {
			out[key] = value
		}
		out["owner_fullname"] = fullname
		decorated = append(decorated, out)
	}
	return decorated
}

// asInt64 normalizes the numeric types the row scanner may produce.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
