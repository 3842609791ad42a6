package models

import "time"

// MaxPostContentLen is the maximum rune length of a post's content.
const MaxPostContentLen = 600

// MaxPostTags is the maximum number of tags a single post may carry.
const MaxPostTags = 4

// Post represents a shared post. Posts are immutable after creation:
// there is no edit or delete path.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Content string `gorm:"size:600;not null" json:"content"`
	Tags    []Tag  `gorm:"foreignKey:PostID" json:"tags"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}
