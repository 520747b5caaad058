package model

import (
	"github.com/shopspring/decimal"
)

// Entity type tags for bill records in the history table.
const (
	EntityTypeBill     = "bill"
	EntityTypeBillItem = "bill_item"
)

// Bill statuses.
const (
	BillStatusUnpaid    = "unpaid"
	BillStatusPaid      = "paid"
	BillStatusCancelled = "cancelled"
)

// ValidBillTransitions lists the allowed status moves. A paid bill can be
// reopened; a cancelled bill is terminal.
var ValidBillTransitions = map[string][]string{
	BillStatusUnpaid: {BillStatusPaid, BillStatusCancelled},
	BillStatusPaid:   {BillStatusUnpaid},
}

// CanTransitionTo reports whether a bill may move between two statuses.
func CanTransitionTo(currentStatus, targetStatus string) bool {
	allowed, exists := ValidBillTransitions[currentStatus]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == targetStatus {
			return true
		}
	}
	return false
}

// Bill is an itemised invoice. SerialNo is the human-facing sequential
// number ("AMR-8001") sourced from the settings counter; ID is the internal
// primary key. TotalAmount is fixed at creation time from the line items and
// never re-derived afterwards.
//
// CustomerName is free text from the billing form; CustomerID is only set
// when the name resolved to an existing customer at generation time.
type Bill struct {
	ID           string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	SerialNo     string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"serial_no"`
	CustomerName string          `gorm:"type:varchar(128);not null" json:"customer_name"`
	CustomerID   string          `gorm:"type:varchar(64);index" json:"customer_id,omitempty"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	Status       string          `gorm:"type:varchar(20);index;not null" json:"status"`
	Items        []BillItem      `gorm:"foreignKey:BillID" json:"items,omitempty"`
	AuditMeta
}

func (Bill) TableName() string {
	return "bill"
}

func (b *Bill) EntityRef() (string, string) {
	return EntityTypeBill, b.ID
}

// BillItem is one line of a bill. Amount = Quantity * Price, recomputed by
// the same operation whenever either factor changes - a stale Amount is a
// defect.
type BillItem struct {
	ID          string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	BillID      string          `gorm:"type:varchar(64);index;not null" json:"bill_id"`
	ProductName string          `gorm:"type:varchar(128);not null" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	AuditMeta
}

func (BillItem) TableName() string {
	return "bill_item"
}

func (i *BillItem) EntityRef() (string, string) {
	return EntityTypeBillItem, i.ID
}
