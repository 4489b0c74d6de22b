package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

type Category struct {
	ID           string `gorm:"type:char(24);primaryKey" json:"_id"`
	CommercantID string `gorm:"type:char(24);index" json:"commercant_id"`
	Nom          string `gorm:"size:100;not null" json:"nom"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	return nil
}

// CategoryCount pairs a category with its in-stock product count for the
// storefront category listing.
type CategoryCount struct {
	ID    string `json:"_id"`
	Nom   string `json:"nom"`
	Count int64  `json:"count"`
}
