package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sokhnamaimouna97/Paps/models"
)

func TestGetBoutique(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")

	svc := NewStorefrontService(db)

	found, err := svc.GetBoutique(boutique.ID)
	require.NoError(t, err)
	assert.Equal(t, "chez-awa", found.NomBoutique)

	profile := found.BoutiqueProfile()
	assert.Equal(t, boutique.ID, profile.ID)
	assert.Equal(t, "Dakar", profile.Adresse)
}

func TestGetBoutique_MalformedID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStorefrontService(db)

	_, err := svc.GetBoutique("abc")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGetBoutique_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStorefrontService(db)

	_, err := svc.GetBoutique(primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetBoutique_RejectsNonMerchantAccounts(t *testing.T) {
	db := setupTestDB(t)
	livreur := createLivreur(t, db, "moussa@example.com")

	svc := NewStorefrontService(db)
	_, err := svc.GetBoutique(livreur.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListProducts_ExcludesOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	createProduct(t, db, boutique.ID, "Bissap 1L", 1000, 3)
	createProduct(t, db, boutique.ID, "Gingembre 1L", 1000, 0)

	svc := NewStorefrontService(db)
	produits, pagination, err := svc.ListProducts(boutique.ID, 1, 12, "nom", "asc")
	require.NoError(t, err)

	require.Len(t, produits, 1)
	assert.Equal(t, "Bissap 1L", produits[0].Nom)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestListProducts_ScopedToBoutique(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	autre := createBoutique(t, db, "chez-binta")
	createProduct(t, db, boutique.ID, "Bissap 1L", 1000, 3)
	createProduct(t, db, autre.ID, "Thiakry", 800, 5)

	svc := NewStorefrontService(db)
	produits, _, err := svc.ListProducts(boutique.ID, 1, 12, "nom", "asc")
	require.NoError(t, err)

	require.Len(t, produits, 1)
	assert.Equal(t, "Bissap 1L", produits[0].Nom)
}

func TestListProducts_Pagination(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	for i := 0; i < 13; i++ {
		createProduct(t, db, boutique.ID, fmt.Sprintf("Produit %02d", i), 1000, 5)
	}

	svc := NewStorefrontService(db)

	page1, pagination, err := svc.ListProducts(boutique.ID, 1, 12, "nom", "asc")
	require.NoError(t, err)
	assert.Len(t, page1, 12)
	assert.Equal(t, int64(13), pagination.Total)
	assert.Equal(t, 2, pagination.Pages)

	page2, pagination, err := svc.ListProducts(boutique.ID, 2, 12, "nom", "asc")
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.Equal(t, 2, pagination.Pages)
	assert.Equal(t, "Produit 12", page2[0].Nom)
}

func TestListProducts_SortByPriceDesc(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	createProduct(t, db, boutique.ID, "Bissap 1L", 1000, 3)
	createProduct(t, db, boutique.ID, "Riz 5kg", 4500, 3)
	createProduct(t, db, boutique.ID, "Gingembre 1L", 1500, 3)

	svc := NewStorefrontService(db)
	produits, _, err := svc.ListProducts(boutique.ID, 1, 12, "prix", "desc")
	require.NoError(t, err)

	require.Len(t, produits, 3)
	assert.Equal(t, "Riz 5kg", produits[0].Nom)
	assert.Equal(t, "Bissap 1L", produits[2].Nom)
}

func TestListProducts_UnknownSortFallsBackToName(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	createProduct(t, db, boutique.ID, "Zèbre", 1000, 3)
	createProduct(t, db, boutique.ID, "Ananas", 1000, 3)

	svc := NewStorefrontService(db)
	produits, _, err := svc.ListProducts(boutique.ID, 1, 12, "id; DROP TABLE products", "asc")
	require.NoError(t, err)

	require.Len(t, produits, 2)
	assert.Equal(t, "Ananas", produits[0].Nom)
}

func TestListCategories_CountsInStockOnly(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	boissons := createCategory(t, db, boutique.ID, "Boissons")
	epicerie := createCategory(t, db, boutique.ID, "Épicerie")

	bissap := createProduct(t, db, boutique.ID, "Bissap 1L", 1000, 3)
	gingembre := createProduct(t, db, boutique.ID, "Gingembre 1L", 1000, 0)
	riz := createProduct(t, db, boutique.ID, "Riz 5kg", 4500, 0)
	for produit, categorie := range map[*models.Product]*models.Category{
		bissap:    boissons,
		gingembre: boissons,
		riz:       epicerie,
	} {
		require.NoError(t, db.Model(produit).Update("categorie_id", categorie.ID).Error)
	}

	svc := NewStorefrontService(db)
	counts, err := svc.ListCategories(boutique.ID)
	require.NoError(t, err)

	// Épicerie has no in-stock product, so it is absent entirely
	require.Len(t, counts, 1)
	assert.Equal(t, "Boissons", counts[0].Nom)
	assert.Equal(t, int64(1), counts[0].Count)
}

func TestSearchProducts_CaseInsensitiveSubstring(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	createProduct(t, db, boutique.ID, "Bissap 1L", 1000, 3)
	createProduct(t, db, boutique.ID, "Riz 5kg", 4500, 3)

	svc := NewStorefrontService(db)

	produits, err := svc.SearchProducts(boutique.ID, SearchFilters{Query: "BISS"})
	require.NoError(t, err)
	require.Len(t, produits, 1)
	assert.Equal(t, "Bissap 1L", produits[0].Nom)

	// Matches the description too
	produits, err = svc.SearchProducts(boutique.ID, SearchFilters{Query: "de test"})
	require.NoError(t, err)
	assert.Len(t, produits, 2)
}

func TestSearchProducts_Filters(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	boissons := createCategory(t, db, boutique.ID, "Boissons")

	bissap := createProduct(t, db, boutique.ID, "Bissap 1L", 1000, 3)
	require.NoError(t, db.Model(bissap).Update("categorie_id", boissons.ID).Error)
	createProduct(t, db, boutique.ID, "Riz 5kg", 4500, 3)
	createProduct(t, db, boutique.ID, "Gingembre 1L", 1500, 3)

	svc := NewStorefrontService(db)

	produits, err := svc.SearchProducts(boutique.ID, SearchFilters{CategorieID: boissons.ID})
	require.NoError(t, err)
	require.Len(t, produits, 1)
	assert.Equal(t, "Bissap 1L", produits[0].Nom)

	min := decimal.NewFromInt(1200)
	max := decimal.NewFromInt(2000)
	produits, err = svc.SearchProducts(boutique.ID, SearchFilters{MinPrix: &min, MaxPrix: &max})
	require.NoError(t, err)
	require.Len(t, produits, 1)
	assert.Equal(t, "Gingembre 1L", produits[0].Nom)
}

func TestSearchProducts_ExcludesOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	createProduct(t, db, boutique.ID, "Bissap 1L", 1000, 0)

	svc := NewStorefrontService(db)
	produits, err := svc.SearchProducts(boutique.ID, SearchFilters{Query: "bissap"})
	require.NoError(t, err)
	assert.Empty(t, produits)
}

func TestSearchProducts_CappedAt50(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	for i := 0; i < 60; i++ {
		createProduct(t, db, boutique.ID, fmt.Sprintf("Produit %02d", i), 1000, 5)
	}

	svc := NewStorefrontService(db)
	produits, err := svc.SearchProducts(boutique.ID, SearchFilters{})
	require.NoError(t, err)
	assert.Len(t, produits, 50)
}

func TestSearchProducts_MalformedCategoryID(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")

	svc := NewStorefrontService(db)
	_, err := svc.SearchProducts(boutique.ID, SearchFilters{CategorieID: "xyz"})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGetProduct_ScopedToBoutique(t *testing.T) {
	db := setupTestDB(t)
	boutique := createBoutique(t, db, "chez-awa")
	autre := createBoutique(t, db, "chez-binta")
	produit := createProduct(t, db, boutique.ID, "Bissap 1L", 1000, 3)
	etranger := createProduct(t, db, autre.ID, "Thiakry", 800, 5)

	svc := NewStorefrontService(db)

	found, err := svc.GetProduct(boutique.ID, produit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bissap 1L", found.Nom)

	_, err = svc.GetProduct(boutique.ID, etranger.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
