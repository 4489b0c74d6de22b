package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/sokhnamaimouna97/Paps/models"
)

// ProductHandler is the merchant-side catalog CRUD. Every query is scoped to
// the authenticated merchant so one tenant can never touch another's rows.
type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

// ProductRequest is the create/update payload.
type ProductRequest struct {
	Nom         string          `json:"nom"`
	Description string          `json:"description"`
	Prix        decimal.Decimal `json:"prix"`
	Stock       int             `json:"stock"`
	CategorieID string          `json:"categorie_id"`
	ImageURL    string          `json:"image_url"`
}

func (r *ProductRequest) validate() string {
	if r.Nom == "" {
		return "Le nom du produit est requis"
	}
	if r.Prix.IsNegative() {
		return "Le prix doit être positif"
	}
	if r.Stock < 0 {
		return "Le stock doit être positif"
	}
	return ""
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données invalides", nil))
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(msg, nil))
	}

	merchantID := c.Locals("user_id").(string)

	if req.CategorieID != "" {
		if err := h.checkCategory(merchantID, req.CategorieID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Catégorie invalide", nil))
		}
	}

	produit := models.Product{
		CommercantID: merchantID,
		Nom:          req.Nom,
		Description:  req.Description,
		Prix:         req.Prix,
		Stock:        req.Stock,
		CategorieID:  req.CategorieID,
		ImageURL:     req.ImageURL,
	}
	if err := h.DB.Create(&produit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible de créer le produit", nil))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("Produit créé avec succès", produit, nil))
}

// GetMyProducts - GET /api/products
// Unlike the storefront, the merchant sees sold-out products too.
func (h *ProductHandler) GetMyProducts(c *fiber.Ctx) error {
	merchantID := c.Locals("user_id").(string)

	query := h.DB.Preload("Categorie").Where("commercant_id = ?", merchantID)
	if categorie := c.Query("categorie"); categorie != "" {
		query = query.Where("categorie_id = ?", categorie)
	}

	var produits []models.Product
	if err := query.Order("created_at DESC").Find(&produits).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible de récupérer les produits", nil))
	}

	return c.JSON(models.SuccessResponse("Produits récupérés avec succès", produits, nil))
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	merchantID := c.Locals("user_id").(string)

	produit, err := h.findOwned(merchantID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Produit non trouvé", nil))
	}
	return c.JSON(models.SuccessResponse("Produit récupéré avec succès", produit, nil))
}

// UpdateProduct - PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	merchantID := c.Locals("user_id").(string)

	produit, err := h.findOwned(merchantID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Produit non trouvé", nil))
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données invalides", nil))
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(msg, nil))
	}
	if req.CategorieID != "" {
		if err := h.checkCategory(merchantID, req.CategorieID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Catégorie invalide", nil))
		}
	}

	produit.Nom = req.Nom
	produit.Description = req.Description
	produit.Prix = req.Prix
	produit.Stock = req.Stock
	produit.CategorieID = req.CategorieID
	produit.ImageURL = req.ImageURL

	if err := h.DB.Save(produit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible de mettre à jour le produit", nil))
	}

	return c.JSON(models.SuccessResponse("Produit mis à jour avec succès", produit, nil))
}

// DeleteProduct - DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	merchantID := c.Locals("user_id").(string)

	produit, err := h.findOwned(merchantID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Produit non trouvé", nil))
	}

	if err := h.DB.Delete(produit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Impossible de supprimer le produit", nil))
	}

	return c.JSON(models.SuccessResponse("Produit supprimé avec succès", nil, nil))
}

func (h *ProductHandler) findOwned(merchantID, productID string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(productID); err != nil {
		return nil, err
	}
	var produit models.Product
	err := h.DB.Preload("Categorie").
		Where("id = ? AND commercant_id = ?", productID, merchantID).
		First(&produit).Error
	if err != nil {
		return nil, err
	}
	return &produit, nil
}

func (h *ProductHandler) checkCategory(merchantID, categoryID string) error {
	if _, err := primitive.ObjectIDFromHex(categoryID); err != nil {
		return err
	}
	var categorie models.Category
	return h.DB.Where("id = ? AND commercant_id = ?", categoryID, merchantID).First(&categorie).Error
}
