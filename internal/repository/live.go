package repository

import (
	"context"
	"errors"

	"commusics/internal/cache"
	"commusics/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LiveRepository defines persistence operations for lives and attendance.
type LiveRepository interface {
	CreateWithArtists(ctx context.Context, live *models.Live, artistIDs []uint) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Live, error)
	List(ctx context.Context, limit, offset int) ([]models.Live, error)
	ToggleAttendance(ctx context.Context, userID, liveID uint) (attending bool, err error)
}

type liveRepository struct {
	db *gorm.DB
}

// NewLiveRepository returns a new LiveRepository implementation.
func NewLiveRepository(db *gorm.DB) LiveRepository {
	return &liveRepository{db: db}
}

// CreateWithArtists persists a live and its ordered artist links in one
// transaction. artistIDs is positional: index 0 is the primary artist.
func (r *liveRepository) CreateWithArtists(ctx context.Context, live *models.Live, artistIDs []uint) error {
	if len(artistIDs) == 0 {
		return models.NewValidationError("A live requires at least one artist")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(live).Error; err != nil {
			return err
		}
		for i, artistID := range artistIDs {
			link := models.LiveArtist{LiveID: live.ID, ArtistID: artistID, Position: i}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *liveRepository) applyLiveDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "lives.*, (SELECT COUNT(*) FROM live_attendances WHERE live_attendances.live_id = lives.id) as attendees_count"
	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM live_attendances WHERE live_attendances.live_id = lives.id AND live_attendances.user_id = ?) as attending", viewerID)
	}
	return db.Select(selectQuery + ", false as attending")
}

// GetByID loads one live with its ordered lineup. Anonymous reads are
// served cache-aside; the attending column is computed per viewer, so
// authenticated reads go straight to the database.
func (r *liveRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Live, error) {
	var live models.Live

	load := func() error {
		err := r.applyLiveDetails(r.db.WithContext(ctx), viewerID).
			Preload("Artists", func(db *gorm.DB) *gorm.DB {
				return db.Order("live_artists.position ASC")
			}).
			Preload("Artists.Artist").
			First(&live, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Live", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if viewerID == 0 {
		err = cache.Aside(ctx, cache.LiveKey(id), &live, cache.LiveTTL, load)
	} else {
		err = load()
	}
	if err != nil {
		return nil, err
	}
	return &live, nil
}

func (r *liveRepository) List(ctx context.Context, limit, offset int) ([]models.Live, error) {
	var lives []models.Live
	err := r.applyLiveDetails(r.db.WithContext(ctx), 0).
		Preload("Artists", func(db *gorm.DB) *gorm.DB {
			return db.Order("live_artists.position ASC")
		}).
		Preload("Artists.Artist").
		Order("lives.held_on DESC").
		Limit(limit).
		Offset(offset).
		Find(&lives).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return lives, nil
}

// ToggleAttendance marks attendance when no edge exists and clears it
// otherwise, racing safely on the unique pair index.
func (r *liveRepository) ToggleAttendance(ctx context.Context, userID, liveID uint) (bool, error) {
	edge := models.LiveAttendance{UserID: userID, LiveID: liveID}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}

	if result.RowsAffected > 0 {
		cache.InvalidateLive(ctx, liveID)
		return true, nil
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND live_id = ?", userID, liveID).
		Delete(&models.LiveAttendance{}).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	cache.InvalidateLive(ctx, liveID)
	return false, nil
}
