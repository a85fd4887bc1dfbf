package models

import (
	"time"

	"gorm.io/gorm"
)

// Model types a customer can configure
const (
	ModelTypeSneaker = "sneaker"
	ModelTypeHeel    = "heel"
)

// Order statuses
const (
	StatusInProduction = "in production"
	StatusShipped      = "shipped"
	StatusDelivered    = "delivered"
	StatusCancelled    = "cancelled"
)

// OrderStatuses lists every status an order may carry
var OrderStatuses = []string{
	StatusInProduction,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// IsValidStatus reports whether s is one of the enumerated order statuses.
// Any enumerated value is accepted regardless of the current status; there
// is no transition table.
func IsValidStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Layer is one configurable part of a product: a material and a color
type Layer struct {
	Material string `json:"material"`
	Color    string `json:"color"`
}

// LayerMap maps a slot name (e.g. "laces", "Object_3") to its layer
type LayerMap map[string]Layer

// Order represents a custom footwear order in the system
type Order struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OrderNumber   string         `gorm:"uniqueIndex;not null" json:"orderNumber"` // generated UUID, never client-supplied
	CustomerName  string         `gorm:"not null" json:"customerName"`
	CustomerEmail string         `gorm:"not null" json:"customerEmail"`
	ShoeSize      float64        `gorm:"not null" json:"shoeSize"`
	Address       string         `gorm:"not null" json:"address"`
	ModelType     string         `gorm:"not null;index" json:"modelType"` // immutable after creation
	Layers        LayerMap       `gorm:"serializer:json" json:"layers"`
	Status        string         `gorm:"not null;default:'in production'" json:"status"`
	Votes         int            `gorm:"not null;default:0" json:"votes"` // legacy sort key from the public-voting iteration
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
