package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"commusics/internal/config"
	"commusics/internal/models"
	"commusics/internal/repository"
	"commusics/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreateWithTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	args := m.Called(ctx, post, tags)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Feed(ctx context.Context, q repository.FeedQuery) ([]models.Post, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

// MockCatalogRepository is a mock of the CatalogRepository interface
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetOrCreateArtist(ctx context.Context, in repository.ArtistInput) (*models.Artist, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockCatalogRepository) GetOrCreateSong(ctx context.Context, in repository.SongInput) (*models.Song, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockCatalogRepository) GetOrCreateVideo(ctx context.Context, in repository.VideoInput) (*models.Video, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockCatalogRepository) GetArtistByID(ctx context.Context, id uint) (*models.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockCatalogRepository) GetSongByID(ctx context.Context, id uint) (*models.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockCatalogRepository) GetVideoByID(ctx context.Context, id uint) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockCatalogRepository) CreateArtist(ctx context.Context, artist *models.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

// MockLiveRepository is a mock of the LiveRepository interface
type MockLiveRepository struct {
	mock.Mock
}

func (m *MockLiveRepository) CreateWithArtists(ctx context.Context, live *models.Live, artistIDs []uint) error {
	args := m.Called(ctx, live, artistIDs)
	return args.Error(0)
}

func (m *MockLiveRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Live, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Live), args.Error(1)
}

func (m *MockLiveRepository) List(ctx context.Context, limit, offset int) ([]models.Live, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Live), args.Error(1)
}

func (m *MockLiveRepository) ToggleAttendance(ctx context.Context, userID, liveID uint) (bool, error) {
	args := m.Called(ctx, userID, liveID)
	return args.Bool(0), args.Error(1)
}

// newPostTestServer wires a Server whose post service runs against the mocks.
func newPostTestServer(postRepo *MockPostRepository, catalogRepo *MockCatalogRepository, liveRepo *MockLiveRepository) *Server {
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		postRepo: postRepo,
	}
	s.postService = service.NewPostService(postRepo, catalogRepo, liveRepo)
	return s
}

// setTestUser injects an authenticated user the way AuthRequired does.
func setTestUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func TestGetFeed(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		authUserID    uint
		expectedQuery repository.FeedQuery
	}{
		{
			name:          "Global Default",
			url:           "/feed",
			expectedQuery: repository.FeedQuery{},
		},
		{
			name:          "Explicit Page",
			url:           "/feed?page=3",
			expectedQuery: repository.FeedQuery{Page: 3},
		},
		{
			name:          "Search Scope",
			url:           "/feed?q=shoegaze",
			expectedQuery: repository.FeedQuery{Search: "shoegaze"},
		},
		{
			name:          "Profile Scope",
			url:           "/feed?user=9",
			expectedQuery: repository.FeedQuery{ProfileUserID: 9},
		},
		{
			name:          "Artist Scope",
			url:           "/feed?artist=4",
			expectedQuery: repository.FeedQuery{ArtistID: 4},
		},
		{
			name:          "Following Scope",
			url:           "/feed?following=true",
			authUserID:    5,
			expectedQuery: repository.FeedQuery{ViewerID: 5, Following: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			postRepo.On("Feed", mock.Anything, tt.expectedQuery).
				Return([]models.Post{{ID: 1, Content: "hello"}}, nil)

			s := newPostTestServer(postRepo, new(MockCatalogRepository), new(MockLiveRepository))
			app := fiber.New()
			app.Get("/feed", s.GetFeed)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.authUserID != 0 {
				token, err := s.generateToken(tt.authUserID, "viewer")
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body struct {
				Posts []models.Post `json:"posts"`
				Page  int           `json:"page"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Len(t, body.Posts, 1)
			assert.Equal(t, tt.expectedQuery.Page, body.Page)
			postRepo.AssertExpectations(t)
		})
	}
}

func TestGetFeed_FollowingRequiresAuth(t *testing.T) {
	postRepo := new(MockPostRepository)
	s := newPostTestServer(postRepo, new(MockCatalogRepository), new(MockLiveRepository))
	app := fiber.New()
	app.Get("/feed", s.GetFeed)

	req := httptest.NewRequest(http.MethodGet, "/feed?following=true", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	postRepo.AssertNotCalled(t, "Feed", mock.Anything, mock.Anything)
}

func TestGetFeed_ShortSearchReturnsEmptyPage(t *testing.T) {
	postRepo := new(MockPostRepository)
	s := newPostTestServer(postRepo, new(MockCatalogRepository), new(MockLiveRepository))
	app := fiber.New()
	app.Get("/feed", s.GetFeed)

	req := httptest.NewRequest(http.MethodGet, "/feed?q=a", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Posts)
	postRepo.AssertNotCalled(t, "Feed", mock.Anything, mock.Anything)
}

func TestCreatePost(t *testing.T) {
	postRepo := new(MockPostRepository)
	catalogRepo := new(MockCatalogRepository)

	catalogRepo.On("GetOrCreateSong", mock.Anything, repository.SongInput{
		SpotifyID: "sp123",
		Name:      "Only Shallow",
		Artists:   []repository.ArtistInput{{SpotifyID: "spA", Name: "My Bloody Valentine"}},
	}).Return(&models.Song{ID: 7, Name: "Only Shallow"}, nil)

	postRepo.On("CreateWithTags", mock.Anything, mock.Anything, mock.MatchedBy(func(tags []models.Tag) bool {
		return len(tags) == 1 && tags[0].SongID != nil && *tags[0].SongID == 7
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Post).ID = 10
	}).Return(nil)
	postRepo.On("GetByID", mock.Anything, uint(10), uint(5)).
		Return(&models.Post{ID: 10, UserID: 5, Content: "loving this track"}, nil)

	s := newPostTestServer(postRepo, catalogRepo, new(MockLiveRepository))
	app := fiber.New()
	app.Post("/posts", setTestUser(5), s.CreatePost)

	body, _ := json.Marshal(fiber.Map{
		"content": "loving this track",
		"tags": []fiber.Map{
			{"song": fiber.Map{
				"spotify_id": "sp123",
				"name":       "Only Shallow",
				"artists": []fiber.Map{
					{"spotify_id": "spA", "name": "My Bloody Valentine"},
				},
			}},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, uint(10), created.ID)
	postRepo.AssertExpectations(t)
	catalogRepo.AssertExpectations(t)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	postRepo := new(MockPostRepository)
	s := newPostTestServer(postRepo, new(MockCatalogRepository), new(MockLiveRepository))
	app := fiber.New()
	app.Post("/posts", setTestUser(5), s.CreatePost)

	body, _ := json.Marshal(fiber.Map{"content": "   "})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	postRepo.AssertNotCalled(t, "CreateWithTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPost(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(3), uint(0)).
		Return(&models.Post{ID: 3, Content: "hello"}, nil)

	s := newPostTestServer(postRepo, new(MockCatalogRepository), new(MockLiveRepository))
	app := fiber.New()
	app.Get("/posts/:id", s.GetPost)

	req := httptest.NewRequest(http.MethodGet, "/posts/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	postRepo.AssertExpectations(t)
}

func TestGetPost_NotFound(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(99), uint(0)).
		Return(nil, models.NewNotFoundError("Post", uint(99)))

	s := newPostTestServer(postRepo, new(MockCatalogRepository), new(MockLiveRepository))
	app := fiber.New()
	app.Get("/posts/:id", s.GetPost)

	req := httptest.NewRequest(http.MethodGet, "/posts/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToggleLikePost(t *testing.T) {
	tests := []struct {
		name     string
		toggled  bool
		expected bool
	}{
		{"Like", true, true},
		{"Unlike", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			postRepo.On("GetByID", mock.Anything, uint(3), uint(0)).
				Return(&models.Post{ID: 3}, nil)
			postRepo.On("ToggleLike", mock.Anything, uint(5), uint(3)).
				Return(tt.toggled, nil)

			s := newPostTestServer(postRepo, new(MockCatalogRepository), new(MockLiveRepository))
			app := fiber.New()
			app.Post("/posts/:id/like", setTestUser(5), s.ToggleLikePost)

			req := httptest.NewRequest(http.MethodPost, "/posts/3/like", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]bool
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expected, body["liked"])
			postRepo.AssertExpectations(t)
		})
	}
}
