package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/sokhnamaimouna97/Paps/internal/ws"
	"github.com/sokhnamaimouna97/Paps/models"
	"github.com/sokhnamaimouna97/Paps/services"
)

// OrderHandler covers guest checkout and the merchant's order management.
type OrderHandler struct {
	Orders *services.OrderService
	Hub    *ws.Hub
}

func NewOrderHandler(orders *services.OrderService, hub *ws.Hub) *OrderHandler {
	return &OrderHandler{Orders: orders, Hub: hub}
}

// GuestOrderRequest is the guest checkout payload.
type GuestOrderRequest struct {
	BoutiqueID string              `json:"boutique_id"`
	ClientInfo models.CustomerInfo `json:"client_info"`
	Items      []services.CartItem `json:"items"`
	Total      decimal.Decimal     `json:"total"`
	Message    string              `json:"message"`
}

// CreateGuestOrder - POST /client/orders/guest
func (h *OrderHandler) CreateGuestOrder(c *fiber.Ctx) error {
	var req GuestOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données de commande invalides", nil))
	}
	if req.BoutiqueID == "" || len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données de commande incomplètes", nil))
	}

	summary, err := h.Orders.PlaceGuestOrder(req.BoutiqueID, req.ClientInfo, req.Items, req.Total, req.Message)
	if err != nil {
		return serviceError(c, err)
	}

	for _, commande := range summary.Orders {
		h.Hub.NotifyOrderCreated(commande)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(
		"Commande créée avec succès ! Vous recevrez un email de confirmation.", summary, nil))
}

// GetOrders - GET /api/orders
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	boutiqueID := c.Locals("user_id").(string)
	status := models.OrderStatus(c.Query("status"))

	commandes, err := h.Orders.ListBoutiqueOrders(boutiqueID, status)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse("Commandes récupérées avec succès", commandes, nil))
}

// StatusUpdateRequest carries the target lifecycle status.
type StatusUpdateRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus - PUT /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	boutiqueID := c.Locals("user_id").(string)

	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données invalides", nil))
	}

	commande, err := h.Orders.UpdateStatus(boutiqueID, c.Params("id"), req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	h.Hub.NotifyOrderStatus(*commande)

	return c.JSON(models.SuccessResponse("Statut mis à jour avec succès", commande, nil))
}

// AssignCourierRequest names the courier to attach to an order.
type AssignCourierRequest struct {
	LivreurID string `json:"livreur_id"`
}

// AssignCourier - PUT /api/orders/:id/assign
func (h *OrderHandler) AssignCourier(c *fiber.Ctx) error {
	boutiqueID := c.Locals("user_id").(string)

	var req AssignCourierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données invalides", nil))
	}

	commande, err := h.Orders.AssignCourier(boutiqueID, c.Params("id"), req.LivreurID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse("Livreur assigné avec succès", commande, nil))
}
