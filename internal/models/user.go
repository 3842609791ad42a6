// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member profile in the Com-Musics application.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Handle   string `gorm:"size:30;uniqueIndex;not null" json:"handle"`
	Nickname string `gorm:"size:50;not null" json:"nickname"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `gorm:"size:500" json:"bio"`
	// AvatarURL and HeaderURL are public media URLs produced by the image pipeline.
	AvatarURL string `json:"avatar_url"`
	HeaderURL string `json:"header_url"`
	// FollowersCount/FollowingCount/IsFollowing are not persisted; computed at query time
	FollowersCount int  `gorm:"->" json:"followers_count"`
	FollowingCount int  `gorm:"->" json:"following_count"`
	IsFollowing    bool `gorm:"->" json:"is_following"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
