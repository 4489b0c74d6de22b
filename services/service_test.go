package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sokhnamaimouna97/Paps/models"
)

// setupTestDB opens a private in-memory database per test. The shared cache
// keeps the schema visible across pooled connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
	))
	return db
}

func createBoutique(t *testing.T, db *gorm.DB, nom string) *models.User {
	t.Helper()
	boutique := &models.User{
		Prenom:      "Awa",
		Nom:         "Diop",
		Telephone:   "+221770000001",
		Email:       nom + "@example.com",
		Password:    "x",
		Role:        models.RoleCommercant,
		NomBoutique: nom,
		Adresse:     "Dakar",
	}
	require.NoError(t, db.Create(boutique).Error)
	return boutique
}

func createLivreur(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	livreur := &models.User{
		Prenom:    "Moussa",
		Nom:       "Fall",
		Telephone: "+221770000002",
		Email:     email,
		Password:  "x",
		Role:      models.RoleLivreur,
	}
	require.NoError(t, db.Create(livreur).Error)
	return livreur
}

func createCategory(t *testing.T, db *gorm.DB, boutiqueID, nom string) *models.Category {
	t.Helper()
	categorie := &models.Category{CommercantID: boutiqueID, Nom: nom}
	require.NoError(t, db.Create(categorie).Error)
	return categorie
}

func createProduct(t *testing.T, db *gorm.DB, boutiqueID, nom string, prix int64, stock int) *models.Product {
	t.Helper()
	produit := &models.Product{
		CommercantID: boutiqueID,
		Nom:          nom,
		Description:  "produit de test",
		Prix:         decimal.NewFromInt(prix),
		Stock:        stock,
	}
	require.NoError(t, db.Create(produit).Error)
	return produit
}

func productStock(t *testing.T, db *gorm.DB, productID string) int {
	t.Helper()
	var produit models.Product
	require.NoError(t, db.First(&produit, "id = ?", productID).Error)
	return produit.Stock
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	return count
}
