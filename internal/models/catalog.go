package models

import "time"

// Artist is a catalog row, upserted from Spotify search results or created
// internally when registering a live. SpotifyID is nil for internal artists.
type Artist struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	SpotifyID *string `gorm:"size:64;uniqueIndex" json:"spotify_id,omitempty"`
	Name      string  `gorm:"size:200;not null" json:"name"`
	ImageURL  string  `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Song is a catalog row keyed by its Spotify track ID.
type Song struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SpotifyID   string `gorm:"size:64;uniqueIndex;not null" json:"spotify_id"`
	Name        string `gorm:"size:200;not null" json:"name"`
	AlbumArtURL string `json:"album_art_url"`
	// Artists is the ordered song-artist junction; position 0 is the primary artist.
	Artists   []SongArtist `gorm:"foreignKey:SongID" json:"artists,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SongArtist links a song to an artist with an explicit position.
type SongArtist struct {
	SongID    uint      `gorm:"primaryKey;autoIncrement:false" json:"song_id"`
	ArtistID  uint      `gorm:"primaryKey;autoIncrement:false" json:"artist_id"`
	Artist    *Artist   `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// PrimaryArtist resolves the song's primary artist: the relation row with the
// lowest position, or nil when the song has no artist rows. This is the single
// normalization point for "could be one or many" artist relations.
func (s *Song) PrimaryArtist() *Artist {
	return primaryArtist(s.Artists, func(sa SongArtist) (int, *Artist) {
		return sa.Position, sa.Artist
	})
}

// Live is a registered live event.
type Live struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Title  string    `gorm:"size:200;not null" json:"title"`
	Venue  string    `gorm:"size:200" json:"venue"`
	HeldOn time.Time `json:"held_on"`
	// Artists is the ordered live-artist junction; position 0 is the primary artist.
	Artists []LiveArtist `gorm:"foreignKey:LiveID" json:"artists,omitempty"`
	// AttendeesCount is not persisted; computed at query time
	AttendeesCount int `gorm:"->" json:"attendees_count"`
	// Attending indicates whether the current requesting user marked attendance (computed)
	Attending bool      `gorm:"->" json:"attending"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LiveArtist links a live to an artist with an explicit position.
type LiveArtist struct {
	LiveID    uint      `gorm:"primaryKey;autoIncrement:false" json:"live_id"`
	ArtistID  uint      `gorm:"primaryKey;autoIncrement:false" json:"artist_id"`
	Artist    *Artist   `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// PrimaryArtist resolves the live's primary artist, position-first.
func (l *Live) PrimaryArtist() *Artist {
	return primaryArtist(l.Artists, func(la LiveArtist) (int, *Artist) {
		return la.Position, la.Artist
	})
}

// Video is a catalog row keyed by its YouTube video ID. ArtistID is set when
// the video is known to belong to an artist (used by the artist feed scope).
type Video struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	YoutubeID    string  `gorm:"size:32;uniqueIndex;not null" json:"youtube_id"`
	Title        string  `gorm:"size:200;not null" json:"title"`
	ThumbnailURL string  `json:"thumbnail_url"`
	ChannelTitle string  `gorm:"size:200" json:"channel_title"`
	ArtistID     *uint   `gorm:"index" json:"artist_id,omitempty"`
	Artist       *Artist `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func primaryArtist[T any](rows []T, fields func(T) (int, *Artist)) *Artist {
	var best *Artist
	bestPos := 0
	for _, row := range rows {
		pos, artist := fields(row)
		if artist == nil {
			continue
		}
		if best == nil || pos < bestPos {
			best = artist
			bestPos = pos
		}
	}
	return best
}
