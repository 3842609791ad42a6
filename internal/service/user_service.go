package service

import (
	"context"

	"commusics/internal/models"
	"commusics/internal/repository"
	"commusics/internal/validation"
)

type UserService struct {
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	favoriteRepo repository.FavoriteRepository
	catalogRepo  repository.CatalogRepository
}

// UpdateProfileInput carries a full profile save. Favorite lists replace
// the stored ones wholesale, in submitted order.
type UpdateProfileInput struct {
	UserID          uint
	Nickname        string
	Bio             string
	AvatarURL       string
	HeaderURL       string
	FavoriteSongs   []SongRef
	FavoriteArtists []ArtistRef
	FavoriteVideos  []VideoRef
}

// Profile is a user page: the user row with computed counts plus their
// ordered favorite lists.
type Profile struct {
	User      *models.User          `json:"user"`
	Favorites *repository.Favorites `json:"favorites"`
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	favoriteRepo repository.FavoriteRepository,
	catalogRepo repository.CatalogRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		followRepo:   followRepo,
		favoriteRepo: favoriteRepo,
		catalogRepo:  catalogRepo,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID, viewerID uint) (*Profile, error) {
	user, err := s.userRepo.GetProfile(ctx, userID, viewerID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Favorites: favorites}, nil
}

// UpdateProfile saves the editable profile fields and replaces the three
// favorite lists. External favorites are upserted into the catalog first.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*Profile, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if err := validation.ValidateNickname(in.Nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	user.Nickname = in.Nickname
	user.Bio = in.Bio
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	if in.HeaderURL != "" {
		user.HeaderURL = in.HeaderURL
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	songIDs := make([]uint, 0, len(in.FavoriteSongs))
	for _, ref := range in.FavoriteSongs {
		id, err := resolveSongRef(ctx, s.catalogRepo, ref)
		if err != nil {
			return nil, err
		}
		songIDs = append(songIDs, id)
	}
	artistIDs := make([]uint, 0, len(in.FavoriteArtists))
	for _, ref := range in.FavoriteArtists {
		id, err := resolveArtistRef(ctx, s.catalogRepo, ref)
		if err != nil {
			return nil, err
		}
		artistIDs = append(artistIDs, id)
	}
	videoIDs := make([]uint, 0, len(in.FavoriteVideos))
	for _, ref := range in.FavoriteVideos {
		id, err := resolveVideoRef(ctx, s.catalogRepo, ref)
		if err != nil {
			return nil, err
		}
		videoIDs = append(videoIDs, id)
	}

	if err := s.favoriteRepo.ReplaceFavorites(ctx, in.UserID, songIDs, artistIDs, videoIDs); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, in.UserID, in.UserID)
}

// ToggleFollow flips the follow edge toward the target user. Self-follows
// are rejected before any write.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	if followerID == 0 {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	if followerID == followingID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return false, err
	}
	return s.followRepo.ToggleFollow(ctx, followerID, followingID)
}

func (s *UserService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID, limit, offset)
}

func (s *UserService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID, limit, offset)
}
