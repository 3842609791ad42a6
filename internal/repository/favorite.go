package repository

import (
	"context"

	"commusics/internal/cache"
	"commusics/internal/models"

	"gorm.io/gorm"
)

// Favorites is a user's three favorite lists, each ordered by sort_order.
type Favorites struct {
	Songs   []models.FavoriteSong   `json:"songs"`
	Artists []models.FavoriteArtist `json:"artists"`
	Videos  []models.FavoriteVideo  `json:"videos"`
}

// FavoriteRepository stores per-user favorite lists. Lists are replaced
// wholesale: the submitted order is the stored order.
type FavoriteRepository interface {
	ReplaceFavorites(ctx context.Context, userID uint, songIDs, artistIDs, videoIDs []uint) error
	ListByUser(ctx context.Context, userID uint) (*Favorites, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository returns a new FavoriteRepository implementation.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// ReplaceFavorites deletes all three lists and reinserts the submitted ones
// in a single transaction, so a failed insert never leaves a half-replaced
// profile. SortOrder is the index in the submitted slice.
func (r *favoriteRepository) ReplaceFavorites(ctx context.Context, userID uint, songIDs, artistIDs, videoIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.FavoriteSong{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.FavoriteArtist{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.FavoriteVideo{}).Error; err != nil {
			return err
		}

		for i, songID := range songIDs {
			row := models.FavoriteSong{UserID: userID, SongID: songID, SortOrder: i}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for i, artistID := range artistIDs {
			row := models.FavoriteArtist{UserID: userID, ArtistID: artistID, SortOrder: i}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for i, videoID := range videoIDs {
			row := models.FavoriteVideo{UserID: userID, VideoID: videoID, SortOrder: i}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if models.IsUniqueConstraintError(err) {
			return models.NewValidationError("Favorite lists must not contain duplicates")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) (*Favorites, error) {
	favorites := Favorites{
		Songs:   []models.FavoriteSong{},
		Artists: []models.FavoriteArtist{},
		Videos:  []models.FavoriteVideo{},
	}

	err := r.db.WithContext(ctx).
		Preload("Song").
		Preload("Song.Artists", func(db *gorm.DB) *gorm.DB {
			return db.Order("song_artists.position ASC")
		}).
		Preload("Song.Artists.Artist").
		Where("user_id = ?", userID).
		Order("sort_order ASC").
		Find(&favorites.Songs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).
		Preload("Artist").
		Where("user_id = ?", userID).
		Order("sort_order ASC").
		Find(&favorites.Artists).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).
		Preload("Video").
		Where("user_id = ?", userID).
		Order("sort_order ASC").
		Find(&favorites.Videos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &favorites, nil
}
