package models

import "time"

// Post represents a forum post.
type Post struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"uniqueIndex;not null" json:"title"`
	Text  string `gorm:"type:text;not null" json:"text"`
	// MaxComments caps the number of comments on the post. Nil means unlimited.
	MaxComments *int `json:"maxComments"`
	UserID      uint `gorm:"not null;index" json:"authorId"`
	User        User `gorm:"foreignKey:UserID" json:"-"`
	// AuthorName is not persisted; joined from users at query time
	AuthorName string `gorm:"->;-:migration" json:"authorName"`
	// CommentCount is not persisted; computed at query time
	CommentCount int       `gorm:"->;-:migration" json:"commentCount"`
	CreatedAt    time.Time `json:"timestamp"`
}
