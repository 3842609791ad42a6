package server

import (
	"errors"
	"unicode/utf8"

	"commusics/internal/catalog/spotify"
	"commusics/internal/catalog/youtube"
	"commusics/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Queries shorter than this return an empty result without an upstream call.
const minSearchQueryLen = 2

// SearchTracks handles GET /api/catalog/tracks
func (s *Server) SearchTracks(c *fiber.Ctx) error {
	q := c.Query("q")
	if utf8.RuneCountInString(q) < minSearchQueryLen {
		return c.JSON(fiber.Map{"tracks": []spotify.Track{}})
	}
	tracks, err := s.musicCatalog.SearchTracks(c.Context(), q)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewExternalAPIError("Music catalog search failed", err))
	}
	return c.JSON(fiber.Map{"tracks": tracks})
}

// SearchArtists handles GET /api/catalog/artists
func (s *Server) SearchArtists(c *fiber.Ctx) error {
	q := c.Query("q")
	if utf8.RuneCountInString(q) < minSearchQueryLen {
		return c.JSON(fiber.Map{"artists": []spotify.Artist{}})
	}
	artists, err := s.musicCatalog.SearchArtists(c.Context(), q)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewExternalAPIError("Music catalog search failed", err))
	}
	return c.JSON(fiber.Map{"artists": artists})
}

// videoCatalogDisabled evaluates the runtime kill switch for the video
// catalog proxy. The flag is off unless configured, so the default is
// an enabled catalog.
func (s *Server) videoCatalogDisabled(c *fiber.Ctx) bool {
	userID, _ := c.Locals("userID").(uint)
	return s.flags.Enabled("video_catalog_killswitch", userID)
}

// SearchVideos handles GET /api/catalog/videos
func (s *Server) SearchVideos(c *fiber.Ctx) error {
	if s.videoCatalogDisabled(c) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewExternalAPIError("Video catalog is temporarily disabled", nil))
	}
	q := c.Query("q")
	if utf8.RuneCountInString(q) < minSearchQueryLen {
		return c.JSON(fiber.Map{"videos": []youtube.Video{}})
	}
	videos, err := s.videoCatalog.Search(c.Context(), q)
	if err != nil {
		return models.RespondWithError(c, videoCatalogStatus(err),
			models.NewExternalAPIError("Video catalog search failed", err))
	}
	return c.JSON(fiber.Map{"videos": videos})
}

// ResolveVideo handles GET /api/catalog/videos/resolve
//
// Accepts a pasted video URL (or bare ID) in the url query parameter and
// returns the catalog metadata for that video.
func (s *Server) ResolveVideo(c *fiber.Ctx) error {
	if s.videoCatalogDisabled(c) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewExternalAPIError("Video catalog is temporarily disabled", nil))
	}
	id, err := youtube.ParseVideoID(c.Query("url"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Not a recognizable video URL"))
	}

	video, err := s.videoCatalog.VideoByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Video", id))
		}
		return models.RespondWithError(c, videoCatalogStatus(err),
			models.NewExternalAPIError("Video lookup failed", err))
	}
	return c.JSON(video)
}

// GetArtist handles GET /api/artists/:id
func (s *Server) GetArtist(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	artist, repoErr := s.catalogRepo.GetArtistByID(c.Context(), id)
	if repoErr != nil {
		return respondServiceError(c, repoErr)
	}
	return c.JSON(artist)
}

func videoCatalogStatus(err error) int {
	if errors.Is(err, youtube.ErrQuotaExceeded) {
		return fiber.StatusTooManyRequests
	}
	return fiber.StatusBadGateway
}
