package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	CartID string `gorm:"type:uuid;not null;index" json:"cart_id"`

	ProductID string  `gorm:"type:uuid;not null" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`

	Quantity int `gorm:"not null" json:"quantity"`

	// Preço capturado no momento do add; não acompanha o preço atual do produto.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
