package models

import "time"

// Follower is a directed follow edge between two users.
// The unique index is the real guard against concurrent double-follows.
type Follower struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follower_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follower_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follower) TableName() string {
	return "followers"
}

// Like is a user-post like edge, at most one per pair.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LiveAttendance marks a user as having attended a live, at most one per pair.
type LiveAttendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_attendance_pair" json:"user_id"`
	LiveID    uint      `gorm:"not null;uniqueIndex:idx_attendance_pair" json:"live_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (LiveAttendance) TableName() string {
	return "live_attendances"
}

// FavoriteSong is an ordered edge from a user to a song. Favorites are fully
// replaced on each profile save; SortOrder is the index in the submitted list.
type FavoriteSong struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_song_pair" json:"user_id"`
	SongID    uint      `gorm:"not null;uniqueIndex:idx_fav_song_pair" json:"song_id"`
	Song      *Song     `gorm:"foreignKey:SongID" json:"song,omitempty"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteArtist is an ordered edge from a user to an artist.
type FavoriteArtist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_artist_pair" json:"user_id"`
	ArtistID  uint      `gorm:"not null;uniqueIndex:idx_fav_artist_pair" json:"artist_id"`
	Artist    *Artist   `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteVideo is an ordered edge from a user to a video.
type FavoriteVideo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_video_pair" json:"user_id"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_fav_video_pair" json:"video_id"`
	Video     *Video    `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
