package server

import (
	"commusics/internal/models"
	"commusics/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.userService.GetProfile(c.Context(), userID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Nickname        string              `json:"nickname"`
		Bio             string              `json:"bio"`
		AvatarURL       string              `json:"avatar_url"`
		HeaderURL       string              `json:"header_url"`
		FavoriteSongs   []service.SongRef   `json:"favorite_songs"`
		FavoriteArtists []service.ArtistRef `json:"favorite_artists"`
		FavoriteVideos  []service.VideoRef  `json:"favorite_videos"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:          userID,
		Nickname:        req.Nickname,
		Bio:             req.Bio,
		AvatarURL:       req.AvatarURL,
		HeaderURL:       req.HeaderURL,
		FavoriteSongs:   req.FavoriteSongs,
		FavoriteArtists: req.FavoriteArtists,
		FavoriteVideos:  req.FavoriteVideos,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	profile, svcErr := s.userService.GetProfile(c.Context(), id, viewerID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(profile)
}

// ToggleFollowUser handles POST /api/users/:id/follow
func (s *Server) ToggleFollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, svcErr := s.userService.ToggleFollow(c.Context(), userID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	users, svcErr := s.userService.Followers(c.Context(), id, p.Limit, p.Offset)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	users, svcErr := s.userService.Following(c.Context(), id, p.Limit, p.Offset)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"users": users})
}
