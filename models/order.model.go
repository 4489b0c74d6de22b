package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle of a single order line.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

var statusRank = map[OrderStatus]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// IsValidStatus reports whether s is a known lifecycle status.
func IsValidStatus(s OrderStatus) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to the
// next. The lifecycle advances one step at a time; cancellation is allowed
// from any non-terminal state; delivered and cancelled are terminal.
func CanTransition(from, to OrderStatus) bool {
	if from == StatusDelivered || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

// CustomerInfo is the guest contact embedded on every order line. Guest
// checkout has no customer account; this snapshot is all we keep.
type CustomerInfo struct {
	Prenom    string `gorm:"size:100" json:"prenom"`
	Nom       string `gorm:"size:100" json:"nom"`
	Telephone string `gorm:"size:20" json:"telephone"`
	Email     string `gorm:"size:100" json:"email"`
	Adresse   string `gorm:"size:255" json:"adresse"`
}

// Complete reports whether every contact field is filled in.
func (c CustomerInfo) Complete() bool {
	return c.Prenom != "" && c.Nom != "" && c.Telephone != "" && c.Email != "" && c.Adresse != ""
}

// Order is one line of a guest submission: one row per distinct product.
// Lines of the same submission share a numero_commande.
type Order struct {
	ID             string          `gorm:"type:char(24);primaryKey" json:"_id"`
	NumeroCommande string          `gorm:"size:32;index" json:"numero_commande"`
	BoutiqueID     string          `gorm:"type:char(24);index;not null" json:"boutique_id"`
	ProduitID      string          `gorm:"type:char(24);index;not null" json:"produit_id"`
	Quantity       int             `gorm:"not null;default:1" json:"quantity"`
	PrixUnitaire   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"prix_unitaire"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status         OrderStatus     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Client         CustomerInfo    `gorm:"embedded;embeddedPrefix:client_" json:"client_info"`
	Message        string          `gorm:"type:text" json:"message"`

	// Affectation livraison (référence faible vers un utilisateur livreur)
	LivreurID *string `gorm:"type:char(24);index" json:"livreur_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Produit *Product `gorm:"foreignKey:ProduitID" json:"produit,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = primitive.NewObjectID().Hex()
	}
	return nil
}
