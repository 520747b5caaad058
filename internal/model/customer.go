package model

// EntityTypeCustomer tags customer records in the history table.
const EntityTypeCustomer = "customer"

// Customer is a party the shop extends credit to.
//
// There is deliberately no stored balance column: a customer's balance is
// always derived from their transactions (see internal/ledger). Deleting a
// customer does not cascade to their transactions - the rows stay behind as
// historical record (see DESIGN.md).
type Customer struct {
	ID      string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(128);index;not null" json:"name"`
	Phone   string `gorm:"type:varchar(32)" json:"phone"`
	Address string `gorm:"type:varchar(256)" json:"address"`
	AuditMeta
}

func (Customer) TableName() string {
	return "customer"
}

func (c *Customer) EntityRef() (string, string) {
	return EntityTypeCustomer, c.ID
}
