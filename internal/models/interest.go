package models

import "time"

// InterestMark records that a user finds a comment interesting.
// The combination of UserID and CommentID must be unique.
type InterestMark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}
