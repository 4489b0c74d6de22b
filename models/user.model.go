package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// Roles carried over from the legacy store. Couriers and merchants share the
// users table; the boutique fields are only meaningful for role "commercant".
const (
	RoleCommercant = "commercant"
	RoleLivreur    = "livreur"
	RoleClient     = "client"
)

type User struct {
	ID string `gorm:"type:char(24);primaryKey" json:"_id"`

	// Informations de connexion
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"size:20;not null;index" json:"role"`

	// Profil
	Prenom    string `gorm:"size:100" json:"prenom"`
	Nom       string `gorm:"size:100" json:"nom"`
	Telephone string `gorm:"size:20" json:"telephone"`

	// Métadonnées boutique (role commercant)
	NomBoutique string `gorm:"size:100" json:"nom_boutique,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Adresse     string `gorm:"size:255" json:"adresse,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	return nil
}

// BoutiqueProfile is the public subset of a merchant account exposed to
// storefront visitors.
type BoutiqueProfile struct {
	ID          string `json:"_id"`
	NomBoutique string `json:"nom_boutique"`
	Description string `json:"description"`
	Adresse     string `json:"adresse"`
	Telephone   string `json:"telephone"`
	Email       string `json:"email"`
}

func (u *User) BoutiqueProfile() BoutiqueProfile {
	return BoutiqueProfile{
		ID:          u.ID,
		NomBoutique: u.NomBoutique,
		Description: u.Description,
		Adresse:     u.Adresse,
		Telephone:   u.Telephone,
		Email:       u.Email,
	}
}
