package repository

import (
	"context"
	"errors"

	"commusics/internal/cache"
	"commusics/internal/models"

	"gorm.io/gorm"
)

// SongInput carries catalog data for a song upsert. Artists are ordered;
// index 0 becomes the primary artist.
type SongInput struct {
	SpotifyID   string
	Name        string
	AlbumArtURL string
	Artists     []ArtistInput
}

// ArtistInput carries catalog data for an artist upsert.
type ArtistInput struct {
	SpotifyID string
	Name      string
	ImageURL  string
}

// VideoInput carries catalog data for a video upsert.
type VideoInput struct {
	YoutubeID    string
	Title        string
	ThumbnailURL string
	ChannelTitle string
	ArtistID     *uint
}

// CatalogRepository upserts catalog rows keyed by their external IDs.
// Every Get-or-create call is idempotent: a second call with the same
// external ID returns the existing row.
type CatalogRepository interface {
	GetOrCreateArtist(ctx context.Context, in ArtistInput) (*models.Artist, error)
	GetOrCreateSong(ctx context.Context, in SongInput) (*models.Song, error)
	GetOrCreateVideo(ctx context.Context, in VideoInput) (*models.Video, error)
	GetArtistByID(ctx context.Context, id uint) (*models.Artist, error)
	GetSongByID(ctx context.Context, id uint) (*models.Song, error)
	GetVideoByID(ctx context.Context, id uint) (*models.Video, error)
	CreateArtist(ctx context.Context, artist *models.Artist) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository returns a new CatalogRepository implementation.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetOrCreateArtist(ctx context.Context, in ArtistInput) (*models.Artist, error) {
	if in.SpotifyID == "" {
		return nil, models.NewValidationError("Artist spotify_id is required")
	}

	var artist models.Artist
	err := r.db.WithContext(ctx).Where("spotify_id = ?", in.SpotifyID).First(&artist).Error
	if err == nil {
		return &artist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	spotifyID := in.SpotifyID
	artist = models.Artist{SpotifyID: &spotifyID, Name: in.Name, ImageURL: in.ImageURL}
	if err := r.db.WithContext(ctx).Create(&artist).Error; err != nil {
		// A concurrent upsert won the race; re-read the winner.
		if models.IsUniqueConstraintError(err) {
			var existing models.Artist
			if lookupErr := r.db.WithContext(ctx).Where("spotify_id = ?", in.SpotifyID).First(&existing).Error; lookupErr == nil {
				return &existing, nil
			}
		}
		return nil, models.NewInternalError(err)
	}
	return &artist, nil
}

// GetOrCreateSong upserts a song and its artist links in one transaction.
func (r *catalogRepository) GetOrCreateSong(ctx context.Context, in SongInput) (*models.Song, error) {
	if in.SpotifyID == "" {
		return nil, models.NewValidationError("Song spotify_id is required")
	}

	existing, err := r.songBySpotifyID(ctx, in.SpotifyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	song := models.Song{SpotifyID: in.SpotifyID, Name: in.Name, AlbumArtURL: in.AlbumArtURL}
	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&song).Error; err != nil {
			return err
		}
		for i, artistIn := range in.Artists {
			artist, err := getOrCreateArtistTx(tx, artistIn)
			if err != nil {
				return err
			}
			link := models.SongArtist{SongID: song.ID, ArtistID: artist.ID, Position: i}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if models.IsUniqueConstraintError(txErr) {
			if winner, err := r.songBySpotifyID(ctx, in.SpotifyID); err == nil && winner != nil {
				return winner, nil
			}
		}
		return nil, models.NewInternalError(txErr)
	}
	return r.GetSongByID(ctx, song.ID)
}

func (r *catalogRepository) songBySpotifyID(ctx context.Context, spotifyID string) (*models.Song, error) {
	var song models.Song
	err := r.db.WithContext(ctx).
		Preload("Artists", func(db *gorm.DB) *gorm.DB {
			return db.Order("song_artists.position ASC")
		}).
		Preload("Artists.Artist").
		Where("spotify_id = ?", spotifyID).
		First(&song).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &song, nil
}

func getOrCreateArtistTx(tx *gorm.DB, in ArtistInput) (*models.Artist, error) {
	var artist models.Artist
	err := tx.Where("spotify_id = ?", in.SpotifyID).First(&artist).Error
	if err == nil {
		return &artist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	spotifyID := in.SpotifyID
	artist = models.Artist{SpotifyID: &spotifyID, Name: in.Name, ImageURL: in.ImageURL}
	if err := tx.Create(&artist).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *catalogRepository) GetOrCreateVideo(ctx context.Context, in VideoInput) (*models.Video, error) {
	if in.YoutubeID == "" {
		return nil, models.NewValidationError("Video youtube_id is required")
	}

	var video models.Video
	err := r.db.WithContext(ctx).Where("youtube_id = ?", in.YoutubeID).First(&video).Error
	if err == nil {
		return &video, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	video = models.Video{
		YoutubeID:    in.YoutubeID,
		Title:        in.Title,
		ThumbnailURL: in.ThumbnailURL,
		ChannelTitle: in.ChannelTitle,
		ArtistID:     in.ArtistID,
	}
	if err := r.db.WithContext(ctx).Create(&video).Error; err != nil {
		if models.IsUniqueConstraintError(err) {
			var existing models.Video
			if lookupErr := r.db.WithContext(ctx).Where("youtube_id = ?", in.YoutubeID).First(&existing).Error; lookupErr == nil {
				return &existing, nil
			}
		}
		return nil, models.NewInternalError(err)
	}
	return &video, nil
}

// GetArtistByID is served cache-aside. Artist rows are written once by
// the get-or-create upserts and never modified, so no invalidation is
// needed beyond the TTL.
func (r *catalogRepository) GetArtistByID(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	err := cache.Aside(ctx, cache.ArtistKey(id), &artist, cache.ArtistTTL, func() error {
		if err := r.db.WithContext(ctx).First(&artist, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Artist", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *catalogRepository) GetSongByID(ctx context.Context, id uint) (*models.Song, error) {
	var song models.Song
	err := r.db.WithContext(ctx).
		Preload("Artists", func(db *gorm.DB) *gorm.DB {
			return db.Order("song_artists.position ASC")
		}).
		Preload("Artists.Artist").
		First(&song, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Song", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &song, nil
}

func (r *catalogRepository) GetVideoByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Preload("Artist").First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Video", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &video, nil
}

// CreateArtist persists an internal artist that has no Spotify identity,
// used when registering a live for an act outside the catalog.
func (r *catalogRepository) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if err := r.db.WithContext(ctx).Create(artist).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
