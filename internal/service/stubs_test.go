package service

import (
	"context"

	"commusics/internal/models"
	"commusics/internal/repository"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createWithTagsFn func(context.Context, *models.Post, []models.Tag) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	feedFn           func(context.Context, repository.FeedQuery) ([]models.Post, error)
	toggleLikeFn     func(context.Context, uint, uint) (bool, error)
	isLikedFn        func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) CreateWithTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return s.createWithTagsFn(ctx, post, tags)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) Feed(ctx context.Context, q repository.FeedQuery) ([]models.Post, error) {
	return s.feedFn(ctx, q)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createWithTagsFn: func(_ context.Context, post *models.Post, tags []models.Tag) error {
			post.ID = 1
			post.Tags = tags
			return nil
		},
		getByIDFn:    func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		feedFn:       func(_ context.Context, _ repository.FeedQuery) ([]models.Post, error) { return nil, nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isLikedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// catalogRepoStub is a stub for repository.CatalogRepository.
type catalogRepoStub struct {
	getOrCreateArtistFn func(context.Context, repository.ArtistInput) (*models.Artist, error)
	getOrCreateSongFn   func(context.Context, repository.SongInput) (*models.Song, error)
	getOrCreateVideoFn  func(context.Context, repository.VideoInput) (*models.Video, error)
	getArtistByIDFn     func(context.Context, uint) (*models.Artist, error)
	getSongByIDFn       func(context.Context, uint) (*models.Song, error)
	getVideoByIDFn      func(context.Context, uint) (*models.Video, error)
	createArtistFn      func(context.Context, *models.Artist) error
}

func (s *catalogRepoStub) GetOrCreateArtist(ctx context.Context, in repository.ArtistInput) (*models.Artist, error) {
	return s.getOrCreateArtistFn(ctx, in)
}
func (s *catalogRepoStub) GetOrCreateSong(ctx context.Context, in repository.SongInput) (*models.Song, error) {
	return s.getOrCreateSongFn(ctx, in)
}
func (s *catalogRepoStub) GetOrCreateVideo(ctx context.Context, in repository.VideoInput) (*models.Video, error) {
	return s.getOrCreateVideoFn(ctx, in)
}
func (s *catalogRepoStub) GetArtistByID(ctx context.Context, id uint) (*models.Artist, error) {
	return s.getArtistByIDFn(ctx, id)
}
func (s *catalogRepoStub) GetSongByID(ctx context.Context, id uint) (*models.Song, error) {
	return s.getSongByIDFn(ctx, id)
}
func (s *catalogRepoStub) GetVideoByID(ctx context.Context, id uint) (*models.Video, error) {
	return s.getVideoByIDFn(ctx, id)
}
func (s *catalogRepoStub) CreateArtist(ctx context.Context, artist *models.Artist) error {
	return s.createArtistFn(ctx, artist)
}

func noopCatalogRepo() *catalogRepoStub {
	return &catalogRepoStub{
		getOrCreateArtistFn: func(_ context.Context, in repository.ArtistInput) (*models.Artist, error) {
			id := in.SpotifyID
			return &models.Artist{ID: 1, SpotifyID: &id, Name: in.Name}, nil
		},
		getOrCreateSongFn: func(_ context.Context, in repository.SongInput) (*models.Song, error) {
			return &models.Song{ID: 2, SpotifyID: in.SpotifyID, Name: in.Name}, nil
		},
		getOrCreateVideoFn: func(_ context.Context, in repository.VideoInput) (*models.Video, error) {
			return &models.Video{ID: 3, YoutubeID: in.YoutubeID, Title: in.Title}, nil
		},
		getArtistByIDFn: func(_ context.Context, id uint) (*models.Artist, error) {
			return &models.Artist{ID: id}, nil
		},
		getSongByIDFn: func(_ context.Context, id uint) (*models.Song, error) {
			return &models.Song{ID: id}, nil
		},
		getVideoByIDFn: func(_ context.Context, id uint) (*models.Video, error) {
			return &models.Video{ID: id}, nil
		},
		createArtistFn: func(_ context.Context, artist *models.Artist) error {
			artist.ID = 9
			return nil
		},
	}
}

// liveRepoStub is a stub for repository.LiveRepository.
type liveRepoStub struct {
	createWithArtistsFn func(context.Context, *models.Live, []uint) error
	getByIDFn           func(context.Context, uint, uint) (*models.Live, error)
	listFn              func(context.Context, int, int) ([]models.Live, error)
	toggleAttendanceFn  func(context.Context, uint, uint) (bool, error)
}

func (s *liveRepoStub) CreateWithArtists(ctx context.Context, live *models.Live, artistIDs []uint) error {
	return s.createWithArtistsFn(ctx, live, artistIDs)
}
func (s *liveRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Live, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *liveRepoStub) List(ctx context.Context, limit, offset int) ([]models.Live, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *liveRepoStub) ToggleAttendance(ctx context.Context, userID, liveID uint) (bool, error) {
	return s.toggleAttendanceFn(ctx, userID, liveID)
}

func noopLiveRepo() *liveRepoStub {
	return &liveRepoStub{
		createWithArtistsFn: func(_ context.Context, live *models.Live, _ []uint) error {
			live.ID = 4
			return nil
		},
		getByIDFn:          func(_ context.Context, id, _ uint) (*models.Live, error) { return &models.Live{ID: id}, nil },
		listFn:             func(_ context.Context, _, _ int) ([]models.Live, error) { return nil, nil },
		toggleAttendanceFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.User, error)
	getProfileFn  func(context.Context, uint, uint) (*models.User, error)
	getByHandleFn func(context.Context, string) (*models.User, error)
	getByEmailFn  func(context.Context, string) (*models.User, error)
	createFn      func(context.Context, *models.User) error
	updateFn      func(context.Context, *models.User) error
	listFn        func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, id, viewerID uint) (*models.User, error) {
	return s.getProfileFn(ctx, id, viewerID)
}
func (s *userRepoStub) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.getByHandleFn(ctx, handle)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:     func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getProfileFn:  func(_ context.Context, id, _ uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByHandleFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:  func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:      func(_ context.Context, _ *models.User) error { return nil },
		updateFn:      func(_ context.Context, _ *models.User) error { return nil },
		listFn:        func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	toggleFollowFn func(context.Context, uint, uint) (bool, error)
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	followersFn    func(context.Context, uint, int, int) ([]models.User, error)
	followingFn    func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *followRepoStub) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.toggleFollowFn(ctx, followerID, followingID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followingFn(ctx, userID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		toggleFollowFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isFollowingFn:  func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followersFn:    func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
		followingFn:    func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// favoriteRepoStub is a stub for repository.FavoriteRepository.
type favoriteRepoStub struct {
	replaceFavoritesFn func(context.Context, uint, []uint, []uint, []uint) error
	listByUserFn       func(context.Context, uint) (*repository.Favorites, error)
}

func (s *favoriteRepoStub) ReplaceFavorites(ctx context.Context, userID uint, songIDs, artistIDs, videoIDs []uint) error {
	return s.replaceFavoritesFn(ctx, userID, songIDs, artistIDs, videoIDs)
}
func (s *favoriteRepoStub) ListByUser(ctx context.Context, userID uint) (*repository.Favorites, error) {
	return s.listByUserFn(ctx, userID)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		replaceFavoritesFn: func(_ context.Context, _ uint, _, _, _ []uint) error { return nil },
		listByUserFn: func(_ context.Context, _ uint) (*repository.Favorites, error) {
			return &repository.Favorites{}, nil
		},
	}
}
