package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityTypeTransaction tags transaction records in the history table.
const EntityTypeTransaction = "transaction"

// Transaction types. Credit raises the party's balance, debit lowers it.
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// Transaction is one ledger entry against exactly one customer or company.
//
// Journal rules:
//   1. rows are append only; the only bulk removal is the per-party
//      "clear record" operation
//   2. Amount is always positive - the sign comes from Type at derivation
//      time, never stored
//   3. CustomerID and CompanyID are mutually exclusive: exactly one is set
//
// BillSerial intentionally carries the bill's human-facing serial (what a
// bookkeeper writes in the khata next to a payment), while BillItem.BillID
// carries the bill's primary id. The two references are named differently
// on purpose so the distinction is visible at every call site.
type Transaction struct {
	ID          string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	CustomerID  string          `gorm:"type:varchar(64);index" json:"customer_id,omitempty"`
	CompanyID   string          `gorm:"type:varchar(64);index" json:"company_id,omitempty"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Type        string          `gorm:"type:varchar(10);not null" json:"type"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4)" json:"quantity"`
	PaymentMode string          `gorm:"type:varchar(32)" json:"payment_mode"`
	BillSerial  string          `gorm:"type:varchar(32);index" json:"bill_serial,omitempty"`
	Description string          `gorm:"type:varchar(256)" json:"description"`
	AuditMeta
}

func (Transaction) TableName() string {
	return "transaction"
}

func (t *Transaction) EntityRef() (string, string) {
	return EntityTypeTransaction, t.ID
}

// PartyID returns whichever side of the customer/company pair is set.
func (t *Transaction) PartyID() string {
	if t.CustomerID != "" {
		return t.CustomerID
	}
	return t.CompanyID
}

// Signed returns the transaction's contribution to its party's balance:
// +Amount for credit, -Amount for debit.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
