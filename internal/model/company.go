package model

// EntityTypeCompany tags company records in the history table.
const EntityTypeCompany = "company"

// Company is a supplier or partner firm. Same ledger rules as Customer:
// balance is derived, never stored.
type Company struct {
	ID            string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name          string `gorm:"type:varchar(128);index;not null" json:"name"`
	Phone         string `gorm:"type:varchar(32)" json:"phone"`
	Address       string `gorm:"type:varchar(256)" json:"address"`
	ContactPerson string `gorm:"type:varchar(128)" json:"contact_person"`
	Email         string `gorm:"type:varchar(128)" json:"email"`
	AuditMeta
}

func (Company) TableName() string {
	return "company"
}

func (c *Company) EntityRef() (string, string) {
	return EntityTypeCompany, c.ID
}
