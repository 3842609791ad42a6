package server

import (
	"bytes"
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

// newLiveTestServer wires a Server whose live service runs against the mocks.
func newLiveTestServer(liveRepo *MockLiveRepository, catalogRepo *MockCatalogRepository) *Server {
	s := &Server{
		config: &config.Config{JWTSecret: "test_secret"},
	}
	s.liveService = service.NewLiveService(liveRepo, catalogRepo)
	return s
}

func TestCreateLive(t *testing.T) {
	liveRepo := new(MockLiveRepository)
	catalogRepo := new(MockCatalogRepository)

	catalogRepo.On("GetOrCreateArtist", mock.Anything, repository.ArtistInput{
		SpotifyID: "spA", Name: "Boris",
	}).Return(&models.Artist{ID: 3, Name: "Boris"}, nil)
	catalogRepo.On("CreateArtist", mock.Anything, mock.MatchedBy(func(a *models.Artist) bool {
		return a.Name == "Local Opener"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Artist).ID = 4
	}).Return(nil)

	liveRepo.On("CreateWithArtists", mock.Anything, mock.Anything, []uint{3, 4}).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Live).ID = 12
		}).Return(nil)
	liveRepo.On("GetByID", mock.Anything, uint(12), uint(0)).
		Return(&models.Live{ID: 12, Title: "Heavy Rocks Night"}, nil)

	s := newLiveTestServer(liveRepo, catalogRepo)
	app := fiber.New()
	app.Post("/lives", setTestUser(5), s.CreateLive)

	body, _ := json.Marshal(fiber.Map{
		"title": "Heavy Rocks Night",
		"venue": "Shibuya O-East",
		"artists": []fiber.Map{
			{"spotify_id": "spA", "name": "Boris"},
			{"name": "Local Opener"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/lives", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Live
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, uint(12), created.ID)
	liveRepo.AssertExpectations(t)
	catalogRepo.AssertExpectations(t)
}

func TestCreateLive_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body fiber.Map
	}{
		{"Missing Title", fiber.Map{"artists": []fiber.Map{{"name": "Boris"}}}},
		{"No Artists", fiber.Map{"title": "Solo Night"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			liveRepo := new(MockLiveRepository)
			s := newLiveTestServer(liveRepo, new(MockCatalogRepository))
			app := fiber.New()
			app.Post("/lives", setTestUser(5), s.CreateLive)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/lives", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			liveRepo.AssertNotCalled(t, "CreateWithArtists", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetLives(t *testing.T) {
	liveRepo := new(MockLiveRepository)
	liveRepo.On("List", mock.Anything, 20, 0).
		Return([]models.Live{{ID: 1}, {ID: 2}}, nil)

	s := newLiveTestServer(liveRepo, new(MockCatalogRepository))
	app := fiber.New()
	app.Get("/lives", s.GetLives)

	req := httptest.NewRequest(http.MethodGet, "/lives", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Lives []models.Live `json:"lives"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Lives, 2)
	liveRepo.AssertExpectations(t)
}

func TestGetLive(t *testing.T) {
	liveRepo := new(MockLiveRepository)
	liveRepo.On("GetByID", mock.Anything, uint(12), uint(0)).
		Return(&models.Live{ID: 12, AttendeesCount: 4}, nil)

	s := newLiveTestServer(liveRepo, new(MockCatalogRepository))
	app := fiber.New()
	app.Get("/lives/:id", s.GetLive)

	req := httptest.NewRequest(http.MethodGet, "/lives/12", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	liveRepo.AssertExpectations(t)
}

func TestToggleAttendLive(t *testing.T) {
	tests := []struct {
		name     string
		toggled  bool
		expected bool
	}{
		{"Attend", true, true},
		{"Withdraw", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			liveRepo := new(MockLiveRepository)
			liveRepo.On("GetByID", mock.Anything, uint(12), uint(0)).
				Return(&models.Live{ID: 12}, nil)
			liveRepo.On("ToggleAttendance", mock.Anything, uint(5), uint(12)).
				Return(tt.toggled, nil)

			s := newLiveTestServer(liveRepo, new(MockCatalogRepository))
			app := fiber.New()
			app.Post("/lives/:id/attend", setTestUser(5), s.ToggleAttendLive)

			req := httptest.NewRequest(http.MethodPost, "/lives/12/attend", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]bool
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expected, body["attending"])
			liveRepo.AssertExpectations(t)
		})
	}
}
