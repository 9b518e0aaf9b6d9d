package models

type Customer struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	TaxID   string  `gorm:"uniqueIndex;not null" json:"tax_id"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Email   *string `gorm:"uniqueIndex" json:"email"`
}
