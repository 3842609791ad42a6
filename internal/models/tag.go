package models

import "time"

// TagKind identifies which of the four taggable entity kinds a tag references.
type TagKind string

const (
	// TagKindSong tags a post with a song.
	TagKindSong TagKind = "song"
	// TagKindArtist tags a post with an artist.
	TagKindArtist TagKind = "artist"
	// TagKindLive tags a post with a live event.
	TagKindLive TagKind = "live"
	// TagKindVideo tags a post with a video.
	TagKindVideo TagKind = "video"
)

// Tag attaches a post to exactly one of {song, artist, live, video}.
// Exactly one of the four reference columns must be non-null per row;
// Validate enforces the invariant before a tag is persisted.
type Tag struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	PostID   uint    `gorm:"not null;index" json:"post_id"`
	SongID   *uint   `gorm:"index" json:"song_id,omitempty"`
	Song     *Song   `gorm:"foreignKey:SongID" json:"song,omitempty"`
	ArtistID *uint   `gorm:"index" json:"artist_id,omitempty"`
	Artist   *Artist `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	LiveID   *uint   `gorm:"index" json:"live_id,omitempty"`
	Live     *Live   `gorm:"foreignKey:LiveID" json:"live,omitempty"`
	VideoID  *uint   `gorm:"index" json:"video_id,omitempty"`
	Video    *Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Kind derives the tag kind from whichever reference column is set.
// ok is false when the row violates the exactly-one invariant.
func (t *Tag) Kind() (kind TagKind, ok bool) {
	set := 0
	if t.SongID != nil {
		kind = TagKindSong
		set++
	}
	if t.ArtistID != nil {
		kind = TagKindArtist
		set++
	}
	if t.LiveID != nil {
		kind = TagKindLive
		set++
	}
	if t.VideoID != nil {
		kind = TagKindVideo
		set++
	}
	return kind, set == 1
}

// Validate returns a validation error unless exactly one reference is set.
func (t *Tag) Validate() error {
	if _, ok := t.Kind(); !ok {
		return NewValidationError("A tag must reference exactly one of song, artist, live, or video")
	}
	return nil
}
