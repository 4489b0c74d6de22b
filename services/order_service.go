package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sokhnamaimouna97/Paps/models"
)

// totalTolerance is the absolute difference allowed between the total the
// client claims and the total recomputed from server-side prices.
var totalTolerance = decimal.NewFromFloat(0.01)

// CartItem is one line of a submitted guest cart.
type CartItem struct {
	ProduitID string `json:"produit_id"`
	Quantity  int    `json:"quantity"`
}

// ValidatedItem is a cart line after server-side validation: the product as
// read from the store, and the line total recomputed from its current price.
type ValidatedItem struct {
	Produit      models.Product
	Quantity     int
	PrixUnitaire decimal.Decimal
	Total        decimal.Decimal
}

// BoutiqueContact is the merchant contact block of an order summary.
type BoutiqueContact struct {
	Nom       string `json:"nom"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
}

// OrderSummaryItem is one line of the order summary returned to the guest.
type OrderSummaryItem struct {
	Produit      string          `json:"produit"`
	Quantity     int             `json:"quantity"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	Total        decimal.Decimal `json:"total"`
}

// OrderSummary is the response payload for a successful guest order. It is
// not stored; the order rows are the persistent record.
type OrderSummary struct {
	NumeroCommande string              `json:"numero_commande"`
	Boutique       BoutiqueContact     `json:"boutique"`
	Client         models.CustomerInfo `json:"client"`
	Items          []OrderSummaryItem  `json:"items"`
	Total          decimal.Decimal     `json:"total"`
	Status         models.OrderStatus  `json:"status"`
	DateCommande   time.Time           `json:"date_commande"`
	Message        string              `json:"message"`

	// Orders carries the created rows so callers can notify dashboards.
	Orders []models.Order `json:"-"`
}

// OrderService validates guest carts against authoritative prices and stock,
// and commits orders atomically.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ValidateCart re-fetches every product and recomputes the cart total from
// server-side prices. It performs no writes: stock is re-checked atomically
// at commit time.
func (s *OrderService) ValidateCart(boutiqueID string, items []CartItem, claimedTotal decimal.Decimal) ([]ValidatedItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, fail(ErrInvalidRequest, "Données de commande incomplètes")
	}

	calculated := decimal.Zero
	validated := make([]ValidatedItem, 0, len(items))

	for _, item := range items {
		if err := checkID(item.ProduitID); err != nil {
			return nil, decimal.Zero, fail(ErrInvalidRequest, "ID de produit invalide")
		}
		if item.Quantity < 1 {
			return nil, decimal.Zero, fail(ErrInvalidRequest, "Quantité invalide")
		}

		var produit models.Product
		err := s.db.First(&produit, "id = ?", item.ProduitID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, fail(ErrNotFound, "Produit %s non trouvé", item.ProduitID)
		}
		if err != nil {
			return nil, decimal.Zero, err
		}

		if produit.CommercantID != boutiqueID {
			return nil, decimal.Zero, fail(ErrInvalidRequest, "Produit %s n'appartient pas à cette boutique", produit.Nom)
		}
		if produit.Stock < item.Quantity {
			return nil, decimal.Zero, fail(ErrInsufficientStock, "Stock insuffisant pour %s (disponible: %d)", produit.Nom, produit.Stock)
		}

		lineTotal := produit.Prix.Mul(decimal.NewFromInt(int64(item.Quantity)))
		calculated = calculated.Add(lineTotal)

		validated = append(validated, ValidatedItem{
			Produit:      produit,
			Quantity:     item.Quantity,
			PrixUnitaire: produit.Prix,
			Total:        lineTotal,
		})
	}

	if calculated.Sub(claimedTotal).Abs().GreaterThan(totalTolerance) {
		return nil, decimal.Zero, fail(ErrInvalidRequest, "Le total de la commande ne correspond pas")
	}

	return validated, calculated, nil
}

// CommitGuestOrder writes one order row per validated line and decrements
// each product's stock, all inside a single transaction. The decrement is
// conditional on the stock still covering the quantity, so a checkout racing
// with another cannot drive stock negative; losing the race rolls the whole
// order back.
func (s *OrderService) CommitGuestOrder(boutique *models.User, client models.CustomerInfo, items []ValidatedItem, message string) (*OrderSummary, error) {
	numero := fmt.Sprintf("CMD-%d", time.Now().UnixMilli())
	now := time.Now()

	summary := &OrderSummary{
		NumeroCommande: numero,
		Boutique: BoutiqueContact{
			Nom:       boutique.NomBoutique,
			Telephone: boutique.Telephone,
			Email:     boutique.Email,
		},
		Client:       client,
		Total:        decimal.Zero,
		Status:       models.StatusPending,
		DateCommande: now,
		Message:      message,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			commande := models.Order{
				NumeroCommande: numero,
				BoutiqueID:     boutique.ID,
				ProduitID:      item.Produit.ID,
				Quantity:       item.Quantity,
				PrixUnitaire:   item.PrixUnitaire,
				TotalPrice:     item.Total,
				Status:         models.StatusPending,
				Client:         client,
				Message:        message,
			}
			if err := tx.Create(&commande).Error; err != nil {
				return err
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.Produit.ID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Stock moved between validation and commit.
				return fail(ErrInsufficientStock, "Stock insuffisant pour %s", item.Produit.Nom)
			}

			summary.Orders = append(summary.Orders, commande)
			summary.Items = append(summary.Items, OrderSummaryItem{
				Produit:      item.Produit.Nom,
				Quantity:     item.Quantity,
				PrixUnitaire: item.PrixUnitaire,
				Total:        item.Total,
			})
			summary.Total = summary.Total.Add(item.Total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// PlaceGuestOrder runs the full guest checkout: boutique lookup, cart
// validation, then the atomic commit.
func (s *OrderService) PlaceGuestOrder(boutiqueID string, client models.CustomerInfo, items []CartItem, claimedTotal decimal.Decimal, message string) (*OrderSummary, error) {
	boutique, err := findBoutique(s.db, boutiqueID)
	if err != nil {
		return nil, err
	}
	if !client.Complete() {
		return nil, fail(ErrInvalidRequest, "Informations client incomplètes")
	}

	validated, _, err := s.ValidateCart(boutiqueID, items, claimedTotal)
	if err != nil {
		return nil, err
	}

	return s.CommitGuestOrder(boutique, client, validated, message)
}

// ListBoutiqueOrders returns a merchant's orders, optionally filtered by
// status, newest first.
func (s *OrderService) ListBoutiqueOrders(boutiqueID string, status models.OrderStatus) ([]models.Order, error) {
	query := s.db.Preload("Produit").
		Where("boutique_id = ?", boutiqueID).
		Order("created_at DESC")
	if status != "" {
		if !models.IsValidStatus(status) {
			return nil, fail(ErrInvalidRequest, "Statut invalide")
		}
		query = query.Where("status = ?", status)
	}

	var commandes []models.Order
	if err := query.Find(&commandes).Error; err != nil {
		return nil, err
	}
	return commandes, nil
}

// UpdateStatus moves a merchant's order to a new lifecycle status.
func (s *OrderService) UpdateStatus(boutiqueID, orderID string, to models.OrderStatus) (*models.Order, error) {
	commande, err := s.findBoutiqueOrder(boutiqueID, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(commande, to)
}

// AssignCourier attaches a courier to an order. The courier id must resolve
// to a livreur account; courier identity is referenced, never owned.
func (s *OrderService) AssignCourier(boutiqueID, orderID, livreurID string) (*models.Order, error) {
	commande, err := s.findBoutiqueOrder(boutiqueID, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkID(livreurID); err != nil {
		return nil, fail(ErrInvalidRequest, "ID de livreur invalide")
	}

	var livreur models.User
	err = s.db.Where("id = ? AND role = ?", livreurID, models.RoleLivreur).First(&livreur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "Livreur non trouvé")
	}
	if err != nil {
		return nil, err
	}

	commande.LivreurID = &livreur.ID
	if err := s.db.Model(commande).Update("livreur_id", livreur.ID).Error; err != nil {
		return nil, err
	}
	return commande, nil
}

// ListDeliveries returns the orders assigned to a courier, newest first.
func (s *OrderService) ListDeliveries(livreurID string) ([]models.Order, error) {
	var livraisons []models.Order
	err := s.db.Preload("Produit").
		Where("livreur_id = ?", livreurID).
		Order("created_at DESC").
		Find(&livraisons).Error
	if err != nil {
		return nil, err
	}
	return livraisons, nil
}

// UpdateDeliveryStatus lets a courier advance the delivery leg of an order
// assigned to them. Couriers may only set out-for-delivery and delivered.
func (s *OrderService) UpdateDeliveryStatus(livreurID, orderID string, to models.OrderStatus) (*models.Order, error) {
	if err := checkID(orderID); err != nil {
		return nil, err
	}

	var commande models.Order
	err := s.db.Where("id = ? AND livreur_id = ?", orderID, livreurID).First(&commande).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "Livraison non trouvée")
	}
	if err != nil {
		return nil, err
	}

	if to != models.StatusOutForDelivery && to != models.StatusDelivered {
		return nil, fail(ErrInvalidRequest, "Statut non autorisé pour un livreur")
	}
	return s.transition(&commande, to)
}

func (s *OrderService) findBoutiqueOrder(boutiqueID, orderID string) (*models.Order, error) {
	if err := checkID(orderID); err != nil {
		return nil, fail(ErrInvalidRequest, "ID de commande invalide")
	}

	var commande models.Order
	err := s.db.Where("id = ? AND boutique_id = ?", orderID, boutiqueID).First(&commande).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "Commande non trouvée")
	}
	if err != nil {
		return nil, err
	}
	return &commande, nil
}

func (s *OrderService) transition(commande *models.Order, to models.OrderStatus) (*models.Order, error) {
	if !models.IsValidStatus(to) {
		return nil, fail(ErrInvalidRequest, "Statut invalide")
	}
	if !models.CanTransition(commande.Status, to) {
		return nil, fail(ErrInvalidRequest, "Transition de statut invalide (de %s vers %s)", commande.Status, to)
	}

	if err := s.db.Model(commande).Update("status", to).Error; err != nil {
		return nil, err
	}
	commande.Status = to
	return commande, nil
}
