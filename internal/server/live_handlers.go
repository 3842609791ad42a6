package server

import (
	"time"

	"commusics/internal/models"
	"commusics/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateLive handles POST /api/lives
func (s *Server) CreateLive(c *fiber.Ctx) error {
	var req struct {
		Title   string                  `json:"title"`
		Venue   string                  `json:"venue"`
		HeldOn  time.Time               `json:"held_on"`
		Artists []service.LiveArtistRef `json:"artists"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	live, err := s.liveService.CreateLive(c.Context(), service.CreateLiveInput{
		Title:   req.Title,
		Venue:   req.Venue,
		HeldOn:  req.HeldOn,
		Artists: req.Artists,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(live)
}

// GetLives handles GET /api/lives
func (s *Server) GetLives(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	lives, err := s.liveService.ListLives(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"lives": lives})
}

// GetLive handles GET /api/lives/:id
func (s *Server) GetLive(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	live, svcErr := s.liveService.GetLive(c.Context(), id, viewerID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(live)
}

// ToggleAttendLive handles POST /api/lives/:id/attend
func (s *Server) ToggleAttendLive(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	attending, svcErr := s.liveService.ToggleAttendance(c.Context(), userID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"attending": attending})
}
