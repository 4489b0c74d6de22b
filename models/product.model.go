package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

type Product struct {
	ID           string          `gorm:"type:char(24);primaryKey" json:"_id"`
	CommercantID string          `gorm:"type:char(24);index;not null" json:"commercant_id"`
	Nom          string          `gorm:"size:255;not null" json:"nom"`
	Description  string          `gorm:"type:text" json:"description"`
	Prix         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"prix"`
	Stock        int             `gorm:"not null;default:0" json:"stock"`
	CategorieID  string          `gorm:"type:char(24);index" json:"categorie_id"`
	ImageURL     string          `json:"image_url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Categorie *Category `gorm:"foreignKey:CategorieID" json:"categorie,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	return nil
}
