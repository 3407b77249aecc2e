package models

import "time"

// Comment represents a comment on a post. A nil UserID means the comment
// was written anonymously; anonymous comments are the only ones visible to
// unauthenticated requesters.
type Comment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"type:text;not null" json:"text"`
	PostID uint   `gorm:"not null;index" json:"postId"`
	UserID *uint  `gorm:"index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`
	// UserName is not persisted; joined from users at query time (nil for anonymous)
	UserName *string `gorm:"->;-:migration" json:"userName"`
	// CountInterestingMarks is not persisted; aggregated at query time
	CountInterestingMarks int `gorm:"->;-:migration" json:"countInterestingMarks"`
	// IsInterestingForCurrentUser is computed relative to the requesting
	// identity; always false for anonymous requesters.
	IsInterestingForCurrentUser bool      `gorm:"->;-:migration" json:"isInterestingForCurrentUser"`
	CreatedAt                   time.Time `json:"timestamp"`
}
