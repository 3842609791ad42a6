package server

import (
	"io"

	"commusics/internal/models"
	"commusics/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/images/upload
//
// Multipart form with a file field and a kind field (avatar or header).
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	uploaded, svcErr := s.imageService.Upload(service.UploadImageInput{
		UserID:      userID,
		Kind:        c.FormValue("kind"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(uploaded)
}

// ServeImage handles GET /media/i/:hash/:variant
func (s *Server) ServeImage(c *fiber.Ctx) error {
	path, err := s.imageService.ResolveForServing(c.Params("hash"), c.Params("variant"))
	if err != nil {
		return respondServiceError(c, err)
	}
	c.Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.SendFile(path)
}
