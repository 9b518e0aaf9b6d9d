package models

import "github.com/shopspring/decimal"

type Product struct {
	ID    uint            `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"not null" json:"name"`
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	EAN   *string         `gorm:"uniqueIndex" json:"ean"`
}
