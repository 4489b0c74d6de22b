package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sokhnamaimouna97/Paps/internal/ws"
	"github.com/sokhnamaimouna97/Paps/models"
	"github.com/sokhnamaimouna97/Paps/services"
)

// DeliveryHandler is the courier-facing surface: assigned deliveries and the
// delivery leg of the status lifecycle.
type DeliveryHandler struct {
	Orders *services.OrderService
	Hub    *ws.Hub
}

func NewDeliveryHandler(orders *services.OrderService, hub *ws.Hub) *DeliveryHandler {
	return &DeliveryHandler{Orders: orders, Hub: hub}
}

// GetDeliveries - GET /api/deliveries
func (h *DeliveryHandler) GetDeliveries(c *fiber.Ctx) error {
	livreurID := c.Locals("user_id").(string)

	livraisons, err := h.Orders.ListDeliveries(livreurID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse("Livraisons récupérées avec succès", livraisons, nil))
}

// UpdateDeliveryStatus - PUT /api/deliveries/:id/status
func (h *DeliveryHandler) UpdateDeliveryStatus(c *fiber.Ctx) error {
	livreurID := c.Locals("user_id").(string)

	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données invalides", nil))
	}

	commande, err := h.Orders.UpdateDeliveryStatus(livreurID, c.Params("id"), req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	h.Hub.NotifyOrderStatus(*commande)

	return c.JSON(models.SuccessResponse("Statut de livraison mis à jour avec succès", commande, nil))
}
