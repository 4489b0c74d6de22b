package handlers

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sokhnamaimouna97/Paps/models"
)

// UploadHandler handles product image uploads
type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// UploadImage handles image uploads and returns the file URL
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Une image est requise", nil))
	}

	// Validate file type (simple check extension)
	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Seuls les fichiers .jpg, .jpeg et .png sont autorisés", nil))
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	destination := fmt.Sprintf("./uploads/products/%s", filename)

	if err := c.SaveFile(file, destination); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible d'enregistrer le fichier", nil))
	}

	// Static files are served from /uploads
	imageURL := fmt.Sprintf("/uploads/products/%s", filename)

	return c.JSON(models.SuccessResponse("Image téléchargée avec succès", fiber.Map{"url": imageURL}, nil))
}
