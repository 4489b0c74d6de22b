package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/sokhnamaimouna97/Paps/models"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

// GetCategories - GET /api/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	merchantID := c.Locals("user_id").(string)

	var categories []models.Category
	if err := h.DB.Where("commercant_id = ?", merchantID).Order("nom").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible de récupérer les catégories", nil))
	}
	return c.JSON(models.SuccessResponse("Catégories récupérées avec succès", categories, nil))
}

// CreateCategory - POST /api/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	merchantID := c.Locals("user_id").(string)

	var req struct {
		Nom string `json:"nom"`
	}
	if err := c.BodyParser(&req); err != nil || req.Nom == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Le nom de la catégorie est requis", nil))
	}

	categorie := models.Category{
		CommercantID: merchantID,
		Nom:          req.Nom,
	}
	if err := h.DB.Create(&categorie).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible de créer la catégorie", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("Catégorie créée avec succès", categorie, nil))
}

// DeleteCategory - DELETE /api/categories/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	merchantID := c.Locals("user_id").(string)
	id := c.Params("id")

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Identifiant invalide", nil))
	}

	var categorie models.Category
	if err := h.DB.Where("id = ? AND commercant_id = ?", id, merchantID).First(&categorie).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Catégorie non trouvée", nil))
	}

	// Products keep their categorie_id; the storefront join simply stops
	// matching once the category row is gone.
	if err := h.DB.Delete(&categorie).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible de supprimer la catégorie", nil))
	}
	return c.JSON(models.SuccessResponse("Catégorie supprimée avec succès", nil, nil))
}
