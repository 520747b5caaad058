package model

import (
	"github.com/shopspring/decimal"
)

// EntityTypeProduct tags product records in the history table.
const EntityTypeProduct = "product"

// Product is a catalogue item. Bill line items copy the product name as
// free text at billing time; they do not hold a foreign key to the product.
type Product struct {
	ID    string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name  string          `gorm:"type:varchar(128);index;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Stock decimal.Decimal `gorm:"type:decimal(20,4)" json:"stock"`
	Unit  string          `gorm:"type:varchar(32)" json:"unit"`
	AuditMeta
}

func (Product) TableName() string {
	return "product"
}

func (p *Product) EntityRef() (string, string) {
	return EntityTypeProduct, p.ID
}
