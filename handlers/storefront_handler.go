package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/sokhnamaimouna97/Paps/models"
	"github.com/sokhnamaimouna97/Paps/services"
)

// StorefrontHandler exposes the public, merchant-scoped catalog reached via
// boutique invitation links. No authentication.
type StorefrontHandler struct {
	Storefront *services.StorefrontService
}

func NewStorefrontHandler(storefront *services.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{Storefront: storefront}
}

// GetBoutique - GET /client/boutiques/:boutiqueId
func (h *StorefrontHandler) GetBoutique(c *fiber.Ctx) error {
	boutique, err := h.Storefront.GetBoutique(c.Params("boutiqueId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse("Boutique accessible", boutique.BoutiqueProfile(), nil))
}

// GetProducts - GET /client/boutiques/:boutiqueId/products
func (h *StorefrontHandler) GetProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "12"))
	sort := c.Query("sort", "nom")
	order := c.Query("order", "asc")

	produits, pagination, err := h.Storefront.ListProducts(c.Params("boutiqueId"), page, limit, sort, order)
	if err != nil {
		return serviceError(c, err)
	}

	data := fiber.Map{
		"produits":   produits,
		"pagination": pagination,
	}
	return c.JSON(models.SuccessResponse("Produits récupérés avec succès", data, nil))
}

// GetCategories - GET /client/boutiques/:boutiqueId/categories
func (h *StorefrontHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Storefront.ListCategories(c.Params("boutiqueId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse("Catégories récupérées avec succès", categories, nil))
}

// SearchProducts - GET /client/boutiques/:boutiqueId/products/search
func (h *StorefrontHandler) SearchProducts(c *fiber.Ctx) error {
	filters := services.SearchFilters{
		Query:       c.Query("q"),
		CategorieID: c.Query("categorie"),
		Sort:        c.Query("sort", "nom"),
		Order:       c.Query("order", "asc"),
	}
	if raw := c.Query("minPrix"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Prix minimum invalide", nil))
		}
		filters.MinPrix = &min
	}
	if raw := c.Query("maxPrix"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Prix maximum invalide", nil))
		}
		filters.MaxPrix = &max
	}

	produits, err := h.Storefront.SearchProducts(c.Params("boutiqueId"), filters)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse("Recherche effectuée avec succès", produits, nil))
}

// GetProduct - GET /client/boutiques/:boutiqueId/products/:productId
func (h *StorefrontHandler) GetProduct(c *fiber.Ctx) error {
	produit, err := h.Storefront.GetProduct(c.Params("boutiqueId"), c.Params("productId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse("Produit récupéré avec succès", produit, nil))
}
