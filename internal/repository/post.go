package repository

import (
	"context"
	"errors"

	"commusics/internal/cache"
	"commusics/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedPageSize is the fixed number of posts per feed page.
const FeedPageSize = 20

// FeedQuery selects which slice of the feed to assemble. Scopes are
// mutually exclusive and resolved in priority order:
// Search, then ProfileUserID, then Following, then ArtistID, then global.
type FeedQuery struct {
	Page          int
	ViewerID      uint
	Search        string
	ProfileUserID uint
	Following     bool
	ArtistID      uint
}

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	CreateWithTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	Feed(ctx context.Context, q FeedQuery) ([]models.Post, error)
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, err error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// CreateWithTags persists a post and its tags in a single transaction so a
// failed tag insert never leaves an untagged post behind.
func (r *postRepository) CreateWithTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	for i := range tags {
		if err := tags[i].Validate(); err != nil {
			return err
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for i := range tags {
			tags[i].PostID = post.ID
			tags[i].ID = 0
		}
		if len(tags) > 0 {
			if err := tx.Create(&tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	post.Tags = tags
	return nil
}

// applyPostDetails adds the computed like columns to a posts query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"
	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", viewerID)
	}
	return db.Select(selectQuery + ", false as liked")
}

// withTagRelations preloads tags and every entity a tag can reference.
// Song and live artist links are ordered by position so the primary
// artist is always first.
func withTagRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Tags").
		Preload("Tags.Song").
		Preload("Tags.Song.Artists", func(db *gorm.DB) *gorm.DB {
			return db.Order("song_artists.position ASC")
		}).
		Preload("Tags.Song.Artists.Artist").
		Preload("Tags.Artist").
		Preload("Tags.Live").
		Preload("Tags.Live.Artists", func(db *gorm.DB) *gorm.DB {
			return db.Order("live_artists.position ASC")
		}).
		Preload("Tags.Live.Artists.Artist").
		Preload("Tags.Video").
		Preload("Tags.Video.Artist")
}

// GetByID loads one post with its tag relations. Anonymous reads are
// served cache-aside; viewer-scoped reads bypass the cache because the
// liked column is computed per viewer.
func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post

	load := func() error {
		db := r.applyPostDetails(r.db.WithContext(ctx), viewerID)
		if err := withTagRelations(db).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if viewerID == 0 {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, load)
	} else {
		err = load()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Feed returns one page of posts for the scope selected by q, newest first.
func (r *postRepository) Feed(ctx context.Context, q FeedQuery) ([]models.Post, error) {
	db := r.applyPostDetails(r.db.WithContext(ctx), q.ViewerID)

	switch {
	case q.Search != "":
		db = db.Where("posts.content ILIKE ?", "%"+q.Search+"%")
	case q.ProfileUserID != 0:
		db = db.Where("posts.user_id = ?", q.ProfileUserID)
	case q.Following:
		ids, err := r.followingIDs(ctx, q.ViewerID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []models.Post{}, nil
		}
		db = db.Where("posts.user_id IN ?", ids)
	case q.ArtistID != 0:
		ids, err := r.artistPostIDs(ctx, q.ArtistID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []models.Post{}, nil
		}
		db = db.Where("posts.id IN ?", ids)
	}

	var posts []models.Post
	err := withTagRelations(db).
		Order("posts.created_at DESC").
		Limit(FeedPageSize).
		Offset(q.Page * FeedPageSize).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) followingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Raw("SELECT following_id FROM followers WHERE follower_id = ?", userID).
		Scan(&ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// artistPostIDs collects the ids of every post related to an artist through
// any of the four tag paths: a direct artist tag, a tagged song the artist
// performs, a tagged live the artist appears at, or a tagged video linked
// to the artist.
func (r *postRepository) artistPostIDs(ctx context.Context, artistID uint) ([]uint, error) {
	var ids []uint
	query := `SELECT tags.post_id FROM tags WHERE tags.artist_id = ?
UNION
SELECT tags.post_id FROM tags JOIN song_artists ON song_artists.song_id = tags.song_id WHERE song_artists.artist_id = ?
UNION
SELECT tags.post_id FROM tags JOIN live_artists ON live_artists.live_id = tags.live_id WHERE live_artists.artist_id = ?
UNION
SELECT tags.post_id FROM tags JOIN videos ON videos.id = tags.video_id WHERE videos.artist_id = ?`
	err := r.db.WithContext(ctx).
		Raw(query, artistID, artistID, artistID, artistID).
		Scan(&ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// ToggleLike likes the post when no like edge exists and unlikes it
// otherwise. The conditional insert relies on the unique (user_id, post_id)
// index so two concurrent toggles cannot double-insert.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	like := models.Like{UserID: userID, PostID: postID}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}

	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}

	// Edge already present, so this toggle removes it.
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return false, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
