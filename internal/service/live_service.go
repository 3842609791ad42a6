package service

import (
	"context"
	"strings"
	"time"

	"commusics/internal/models"
	"commusics/internal/repository"
)

type LiveService struct {
	liveRepo    repository.LiveRepository
	catalogRepo repository.CatalogRepository
}

// LiveArtistRef names one performer. Internal ID or Spotify payload both
// work; a bare Name registers an internal artist outside the catalog.
type LiveArtistRef struct {
	ArtistID  *uint  `json:"artist_id,omitempty"`
	SpotifyID string `json:"spotify_id,omitempty"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

type CreateLiveInput struct {
	Title   string
	Venue   string
	HeldOn  time.Time
	Artists []LiveArtistRef
}

func NewLiveService(liveRepo repository.LiveRepository, catalogRepo repository.CatalogRepository) *LiveService {
	return &LiveService{liveRepo: liveRepo, catalogRepo: catalogRepo}
}

// CreateLive registers a live with its ordered performers. The first
// artist in the list becomes the primary one.
func (s *LiveService) CreateLive(ctx context.Context, in CreateLiveInput) (*models.Live, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Artists) == 0 {
		return nil, models.NewValidationError("A live requires at least one artist")
	}

	artistIDs := make([]uint, 0, len(in.Artists))
	for _, ref := range in.Artists {
		id, err := s.resolveLiveArtist(ctx, ref)
		if err != nil {
			return nil, err
		}
		artistIDs = append(artistIDs, id)
	}

	live := &models.Live{Title: in.Title, Venue: in.Venue, HeldOn: in.HeldOn}
	if err := s.liveRepo.CreateWithArtists(ctx, live, artistIDs); err != nil {
		return nil, err
	}
	return s.liveRepo.GetByID(ctx, live.ID, 0)
}

func (s *LiveService) resolveLiveArtist(ctx context.Context, ref LiveArtistRef) (uint, error) {
	if ref.ArtistID != nil {
		artist, err := s.catalogRepo.GetArtistByID(ctx, *ref.ArtistID)
		if err != nil {
			return 0, err
		}
		return artist.ID, nil
	}
	if ref.SpotifyID != "" {
		artist, err := s.catalogRepo.GetOrCreateArtist(ctx, repository.ArtistInput{
			SpotifyID: ref.SpotifyID,
			Name:      ref.Name,
			ImageURL:  ref.ImageURL,
		})
		if err != nil {
			return 0, err
		}
		return artist.ID, nil
	}
	if strings.TrimSpace(ref.Name) == "" {
		return 0, models.NewValidationError("A live artist needs artist_id, spotify_id, or a name")
	}
	artist := &models.Artist{Name: ref.Name, ImageURL: ref.ImageURL}
	if err := s.catalogRepo.CreateArtist(ctx, artist); err != nil {
		return 0, err
	}
	return artist.ID, nil
}

func (s *LiveService) GetLive(ctx context.Context, id uint, viewerID uint) (*models.Live, error) {
	return s.liveRepo.GetByID(ctx, id, viewerID)
}

func (s *LiveService) ListLives(ctx context.Context, limit, offset int) ([]models.Live, error) {
	return s.liveRepo.List(ctx, limit, offset)
}

// ToggleAttendance flips the viewer's attendance mark on a live.
func (s *LiveService) ToggleAttendance(ctx context.Context, userID, liveID uint) (bool, error) {
	if userID == 0 {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	if _, err := s.liveRepo.GetByID(ctx, liveID, 0); err != nil {
		return false, err
	}
	return s.liveRepo.ToggleAttendance(ctx, userID, liveID)
}
