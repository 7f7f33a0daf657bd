package models

// Vote represents a single user's vote on a comment. The composite unique
// index guarantees at most one row per (user, comment) pair; voting twice
// toggles the row away instead of duplicating it.
type Vote struct {
	ID        int64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CommentID int64 `gorm:"not null;uniqueIndex:votes_user_comment_ux;column:comment_id" json:"comment_id"`
	UserID    int64 `gorm:"not null;uniqueIndex:votes_user_comment_ux;column:user_id" json:"user_id"`

	// Relationships
	Comment *Comment `gorm:"foreignKey:CommentID;references:ID" json:"-"`
	User    *Person  `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}
