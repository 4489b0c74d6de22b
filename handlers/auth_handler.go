package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sokhnamaimouna97/Paps/models"
	"github.com/sokhnamaimouna97/Paps/utils"
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Prenom    string `json:"prenom"`
	Nom       string `json:"nom"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`

	// Champs boutique (role commercant)
	NomBoutique string `json:"nom_boutique"`
	Description string `json:"description"`
	Adresse     string `json:"adresse"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données invalides", nil))
	}

	if req.Email == "" || req.Password == "" || req.Prenom == "" || req.Nom == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Informations d'inscription incomplètes", nil))
	}

	role := req.Role
	if role == "" {
		role = models.RoleCommercant
	}
	if role != models.RoleCommercant && role != models.RoleLivreur {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Rôle invalide", nil))
	}
	if role == models.RoleCommercant && req.NomBoutique == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Le nom de la boutique est requis", nil))
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse("Cet email est déjà utilisé.", nil))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Erreur serveur", nil))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Erreur serveur", nil))
	}

	user := models.User{
		Prenom:      req.Prenom,
		Nom:         req.Nom,
		Telephone:   req.Telephone,
		Email:       req.Email,
		Password:    hashedPassword,
		Role:        role,
		NomBoutique: req.NomBoutique,
		Description: req.Description,
		Adresse:     req.Adresse,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse("Cet email est déjà utilisé.", nil))
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Erreur serveur", nil))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("Compte créé avec succès.", fiber.Map{
		"user":  user,
		"token": token,
	}, nil))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données invalides", nil))
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Email ou mot de passe incorrect.", nil))
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Email ou mot de passe incorrect.", nil))
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Erreur serveur", nil))
	}

	return c.JSON(models.SuccessResponse("Connexion réussie.", fiber.Map{
		"user":  user,
		"token": token,
	}, nil))
}

// SettingsRequest updates the merchant storefront metadata.
type SettingsRequest struct {
	NomBoutique string `json:"nom_boutique"`
	Description string `json:"description"`
	Adresse     string `json:"adresse"`
	Telephone   string `json:"telephone"`
}

// UpdateSettings - PUT /api/settings
func (h *AuthHandler) UpdateSettings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Données invalides", nil))
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Compte non trouvé", nil))
	}

	if req.NomBoutique != "" {
		user.NomBoutique = req.NomBoutique
	}
	if req.Description != "" {
		user.Description = req.Description
	}
	if req.Adresse != "" {
		user.Adresse = req.Adresse
	}
	if req.Telephone != "" {
		user.Telephone = req.Telephone
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Erreur serveur", nil))
	}

	return c.JSON(models.SuccessResponse("Paramètres mis à jour avec succès", user, nil))
}
