package server

import (
	"commusics/internal/models"
	"commusics/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
//
// Scope is picked from query parameters in priority order: q (search),
// user (profile), following, artist; no parameter means the global feed.
// Pages are 0-indexed and fixed at 20 posts.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	in := service.FeedInput{
		Page:     parsePage(c),
		ViewerID: viewerID,
		Search:   c.Query("q"),
	}
	if userID := c.QueryInt("user", 0); userID > 0 {
		in.ProfileUserID = uint(userID)
	}
	if c.QueryBool("following", false) {
		in.Following = true
	}
	if artistID := c.QueryInt("artist", 0); artistID > 0 {
		in.ArtistID = uint(artistID)
	}

	posts, err := s.postService.GetFeed(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"page":  in.Page,
	})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string             `json:"content"`
		Tags    []service.TagInput `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  userID,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	post, svcErr := s.postService.GetPost(c.Context(), id, viewerID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(post)
}

// ToggleLikePost handles POST /api/posts/:id/like
func (s *Server) ToggleLikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, svcErr := s.postService.ToggleLike(c.Context(), userID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"liked": liked})
}
