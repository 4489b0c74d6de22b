package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/sokhnamaimouna97/Paps/models"
)

const (
	defaultPageSize    = 12
	searchResultsLimit = 50
)

// sortColumns whitelists the storefront sort keys. Anything else falls back
// to sorting by name.
var sortColumns = map[string]string{
	"nom":   "nom",
	"prix":  "prix",
	"stock": "stock",
}

// StorefrontService serves the customer-facing view of one merchant's
// catalog. All queries are scoped to a single boutique and to products with
// stock remaining; nothing here writes.
type StorefrontService struct {
	db *gorm.DB
}

func NewStorefrontService(db *gorm.DB) *StorefrontService {
	return &StorefrontService{db: db}
}

// checkID rejects identifiers that are not well-formed 24-hex object ids.
func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fail(ErrInvalidRequest, "Identifiant invalide")
	}
	return nil
}

// findBoutique resolves a boutique id to a merchant account. Shared with the
// order service, which needs the same lookup before committing.
func findBoutique(db *gorm.DB, boutiqueID string) (*models.User, error) {
	if _, err := primitive.ObjectIDFromHex(boutiqueID); err != nil {
		return nil, fail(ErrInvalidRequest, "ID de boutique invalide")
	}

	var boutique models.User
	err := db.Where("id = ? AND role = ?", boutiqueID, models.RoleCommercant).First(&boutique).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "Boutique non trouvée ou lien d'invitation invalide")
	}
	if err != nil {
		return nil, err
	}
	return &boutique, nil
}

// GetBoutique resolves a boutique id to a merchant account.
func (s *StorefrontService) GetBoutique(boutiqueID string) (*models.User, error) {
	return findBoutique(s.db, boutiqueID)
}

// ListProducts returns one page of the boutique's in-stock products.
func (s *StorefrontService) ListProducts(boutiqueID string, page, limit int, sort, order string) ([]models.Product, models.PaginationMeta, error) {
	if _, err := s.GetBoutique(boutiqueID); err != nil {
		return nil, models.PaginationMeta{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	var total int64
	err := s.db.Model(&models.Product{}).
		Where("commercant_id = ? AND stock > 0", boutiqueID).
		Count(&total).Error
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	var produits []models.Product
	err = s.db.
		Where("commercant_id = ? AND stock > 0", boutiqueID).
		Preload("Categorie").
		Order(orderClause(sort, order)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&produits).Error
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	return produits, models.NewPaginationMeta(page, limit, total), nil
}

// ListCategories returns the boutique's categories with the number of
// in-stock products in each. Categories whose products are all sold out do
// not appear.
func (s *StorefrontService) ListCategories(boutiqueID string) ([]models.CategoryCount, error) {
	if _, err := s.GetBoutique(boutiqueID); err != nil {
		return nil, err
	}

	var counts []models.CategoryCount
	err := s.db.Table("products").
		Select("categories.id AS id, categories.nom AS nom, COUNT(products.id) AS count").
		Joins("JOIN categories ON categories.id = products.categorie_id").
		Where("products.commercant_id = ? AND products.stock > 0 AND products.deleted_at IS NULL", boutiqueID).
		Group("categories.id, categories.nom").
		Order("categories.nom").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// SearchFilters narrows a storefront product search.
type SearchFilters struct {
	Query       string
	CategorieID string
	MinPrix     *decimal.Decimal
	MaxPrix     *decimal.Decimal
	Sort        string
	Order       string
}

// SearchProducts matches the query as a case-insensitive substring of the
// product name or description. Results are capped to avoid unbounded
// responses.
func (s *StorefrontService) SearchProducts(boutiqueID string, f SearchFilters) ([]models.Product, error) {
	if _, err := s.GetBoutique(boutiqueID); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Product{}).
		Where("commercant_id = ? AND stock > 0", boutiqueID)

	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(nom) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.CategorieID != "" {
		if err := checkID(f.CategorieID); err != nil {
			return nil, err
		}
		query = query.Where("categorie_id = ?", f.CategorieID)
	}
	if f.MinPrix != nil {
		query = query.Where("prix >= ?", f.MinPrix)
	}
	if f.MaxPrix != nil {
		query = query.Where("prix <= ?", f.MaxPrix)
	}

	var produits []models.Product
	err := query.
		Preload("Categorie").
		Order(orderClause(f.Sort, f.Order)).
		Limit(searchResultsLimit).
		Find(&produits).Error
	if err != nil {
		return nil, err
	}
	return produits, nil
}

// GetProduct fetches one product, scoped to the boutique so a product id
// from another merchant cannot be read through this storefront.
func (s *StorefrontService) GetProduct(boutiqueID, productID string) (*models.Product, error) {
	if _, err := s.GetBoutique(boutiqueID); err != nil {
		return nil, err
	}
	if err := checkID(productID); err != nil {
		return nil, err
	}

	var produit models.Product
	err := s.db.Preload("Categorie").
		Where("id = ? AND commercant_id = ?", productID, boutiqueID).
		First(&produit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "Produit non trouvé dans cette boutique")
	}
	if err != nil {
		return nil, err
	}
	return &produit, nil
}

func orderClause(sort, order string) string {
	column, ok := sortColumns[sort]
	if !ok {
		column = "nom"
	}
	direction := "ASC"
	if order == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}
