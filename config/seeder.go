package config

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sokhnamaimouna97/Paps/models"
	"github.com/sokhnamaimouna97/Paps/utils"
)

// SeedDemoBoutique creates a demo merchant with a small catalog and a demo
// courier, for local development.
func SeedDemoBoutique(db *gorm.DB) {
	log.Println("🌱 Seeding demo boutique...")

	password, _ := utils.HashPassword("password123")

	boutique := models.User{
		Prenom:      "Awa",
		Nom:         "Diop",
		Telephone:   "+221770000001",
		Email:       "boutique@example.com",
		Password:    password,
		Role:        models.RoleCommercant,
		NomBoutique: "Chez Awa",
		Description: "Épicerie de quartier",
		Adresse:     "Médina, Dakar",
	}

	var existing models.User
	if err := db.Where("email = ?", boutique.Email).First(&existing).Error; err == gorm.ErrRecordNotFound {
		if err := db.Create(&boutique).Error; err != nil {
			log.Printf("Failed to seed boutique: %v", err)
			return
		}
		log.Printf("Boutique seeded: %s (ID: %s)", boutique.NomBoutique, boutique.ID)
	} else {
		log.Printf("Boutique already exists: %s", existing.NomBoutique)
		boutique = existing
	}

	livreur := models.User{
		Prenom:    "Moussa",
		Nom:       "Fall",
		Telephone: "+221770000002",
		Email:     "livreur@example.com",
		Password:  password,
		Role:      models.RoleLivreur,
	}
	if err := db.Where("email = ?", livreur.Email).First(&models.User{}).Error; err == gorm.ErrRecordNotFound {
		if err := db.Create(&livreur).Error; err != nil {
			log.Printf("Failed to seed courier: %v", err)
		}
	}

	categories := []models.Category{
		{CommercantID: boutique.ID, Nom: "Boissons"},
		{CommercantID: boutique.ID, Nom: "Épicerie"},
	}
	for i := range categories {
		var cat models.Category
		err := db.Where("commercant_id = ? AND nom = ?", boutique.ID, categories[i].Nom).First(&cat).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&categories[i]).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", categories[i].Nom, err)
			}
		} else if err == nil {
			categories[i] = cat
		}
	}

	produits := []models.Product{
		{
			CommercantID: boutique.ID,
			Nom:          "Bissap 1L",
			Description:  "Jus de bissap maison",
			Prix:         decimal.NewFromInt(1000),
			Stock:        20,
			CategorieID:  categories[0].ID,
		},
		{
			CommercantID: boutique.ID,
			Nom:          "Riz parfumé 5kg",
			Description:  "Sac de riz parfumé",
			Prix:         decimal.NewFromInt(4500),
			Stock:        10,
			CategorieID:  categories[1].ID,
		},
	}
	for _, produit := range produits {
		var count int64
		db.Model(&models.Product{}).
			Where("commercant_id = ? AND nom = ?", boutique.ID, produit.Nom).
			Count(&count)
		if count == 0 {
			if err := db.Create(&produit).Error; err != nil {
				log.Printf("Failed to seed product %s: %v", produit.Nom, err)
			}
		}
	}

	log.Println("✅ Seeding complete.")
}
