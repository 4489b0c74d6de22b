package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sokhnamaimouna97/Paps/models"
)

// CourierHandler lets merchants look up couriers to assign deliveries to.
type CourierHandler struct {
	DB *gorm.DB
}

func NewCourierHandler(db *gorm.DB) *CourierHandler {
	return &CourierHandler{DB: db}
}

// ListCouriers - GET /api/couriers
func (h *CourierHandler) ListCouriers(c *fiber.Ctx) error {
	query := h.DB.Select("id, prenom, nom, telephone, email").
		Where("role = ?", models.RoleLivreur)

	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("prenom LIKE ? OR nom LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	var livreurs []models.User
	if err := query.Limit(50).Find(&livreurs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible de récupérer les livreurs", nil))
	}

	return c.JSON(models.SuccessResponse("Livreurs récupérés avec succès", livreurs, nil))
}
