package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"commusics/internal/models"
	"commusics/internal/repository"
	"commusics/internal/validation"
)

// MinSearchLen is the minimum rune length for a feed search query.
const MinSearchLen = 2

type PostService struct {
	postRepo    repository.PostRepository
	catalogRepo repository.CatalogRepository
	liveRepo    repository.LiveRepository
}

// TagInput references exactly one taggable entity. The non-nil member
// picks the tag kind.
type TagInput struct {
	Song   *SongRef   `json:"song,omitempty"`
	Artist *ArtistRef `json:"artist,omitempty"`
	Live   *uint      `json:"live_id,omitempty"`
	Video  *VideoRef  `json:"video,omitempty"`
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Tags    []TagInput
}

type FeedInput struct {
	Page          int
	ViewerID      uint
	Search        string
	ProfileUserID uint
	Following     bool
	ArtistID      uint
}

func NewPostService(
	postRepo repository.PostRepository,
	catalogRepo repository.CatalogRepository,
	liveRepo repository.LiveRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		catalogRepo: catalogRepo,
		liveRepo:    liveRepo,
	}
}

// CreatePost validates the content, resolves every tag reference to a
// catalog row (upserting external ones), and writes the post with its
// tags in one transaction.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Tags) > models.MaxPostTags {
		return nil, models.NewValidationError(
			fmt.Sprintf("A post may carry at most %d tags", models.MaxPostTags))
	}

	tags := make([]models.Tag, 0, len(in.Tags))
	for _, tagIn := range in.Tags {
		tag, err := s.resolveTag(ctx, tagIn)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}

	post := &models.Post{UserID: in.UserID, Content: in.Content}
	if err := s.postRepo.CreateWithTags(ctx, post, tags); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) resolveTag(ctx context.Context, in TagInput) (*models.Tag, error) {
	set := 0
	if in.Song != nil {
		set++
	}
	if in.Artist != nil {
		set++
	}
	if in.Live != nil {
		set++
	}
	if in.Video != nil {
		set++
	}
	if set != 1 {
		return nil, models.NewValidationError("A tag must reference exactly one of song, artist, live, or video")
	}

	tag := &models.Tag{}
	switch {
	case in.Song != nil:
		id, err := resolveSongRef(ctx, s.catalogRepo, *in.Song)
		if err != nil {
			return nil, err
		}
		tag.SongID = &id
	case in.Artist != nil:
		id, err := resolveArtistRef(ctx, s.catalogRepo, *in.Artist)
		if err != nil {
			return nil, err
		}
		tag.ArtistID = &id
	case in.Live != nil:
		live, err := s.liveRepo.GetByID(ctx, *in.Live, 0)
		if err != nil {
			return nil, err
		}
		tag.LiveID = &live.ID
	case in.Video != nil:
		id, err := resolveVideoRef(ctx, s.catalogRepo, *in.Video)
		if err != nil {
			return nil, err
		}
		tag.VideoID = &id
	}
	return tag, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, viewerID)
}

// GetFeed assembles one page of the selected feed scope. Search queries
// shorter than two runes return an empty page without touching storage.
func (s *PostService) GetFeed(ctx context.Context, in FeedInput) ([]models.Post, error) {
	if in.Search != "" && utf8.RuneCountInString(in.Search) < MinSearchLen {
		return []models.Post{}, nil
	}
	if in.Following && in.ViewerID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required for the following feed")
	}
	if in.Page < 0 {
		in.Page = 0
	}
	return s.postRepo.Feed(ctx, repository.FeedQuery{
		Page:          in.Page,
		ViewerID:      in.ViewerID,
		Search:        in.Search,
		ProfileUserID: in.ProfileUserID,
		Following:     in.Following,
		ArtistID:      in.ArtistID,
	})
}

// ToggleLike flips the viewer's like on a post and reports the new state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	if userID == 0 {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, err
	}
	return s.postRepo.ToggleLike(ctx, userID, postID)
}
