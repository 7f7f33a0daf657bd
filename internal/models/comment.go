package models

import "time"

// Comment represents a comment or a reply to another comment.
//
// ParentID points at the comment being replied to; TopParentID is a
// denormalized shortcut to the root of the reply chain, so "all descendants
// of a root" is a single indexed lookup instead of a recursive walk.
type Comment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID      int64     `gorm:"not null;index;column:user_id" json:"user_id"`
	ParentID    *int64    `gorm:"index;column:parent_id" json:"parent_id"`
	TopParentID *int64    `gorm:"index;column:top_parent_id" json:"top_parent_id"`
	Added       time.Time `gorm:"not null;autoCreateTime;column:added" json:"added"`
	Edited      time.Time `gorm:"not null;autoUpdateTime;column:edited" json:"edited"`
	Content     string    `gorm:"type:text;not null;column:content" json:"content"`

	// Relationships
	User      *Person  `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Parent    *Comment `gorm:"foreignKey:ParentID;references:ID" json:"-"`
	TopParent *Comment `gorm:"foreignKey:TopParentID;references:ID" json:"-"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// IsRoot reports whether the comment starts a reply chain.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}
