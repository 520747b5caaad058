package model

// EntityTypeSettings tags the settings row in the history table.
const EntityTypeSettings = "settings"

// Settings is the singleton shop configuration row. LastBillSerial is the
// monotonic bill counter; it is only ever advanced by the bill sequencer
// under the serial lock, via an optimistic compare-and-set update.
type Settings struct {
	ID             string `gorm:"type:varchar(64);primaryKey" json:"id"`
	ShopName       string `gorm:"type:varchar(128)" json:"shop_name"`
	ShopAddress    string `gorm:"type:varchar(256)" json:"shop_address"`
	AdminPhone     string `gorm:"type:varchar(32)" json:"admin_phone"`
	LastBillSerial int64  `gorm:"not null;default:0" json:"last_bill_serial"`
	AuditMeta
}

func (Settings) TableName() string {
	return "settings"
}

func (s *Settings) EntityRef() (string, string) {
	return EntityTypeSettings, s.ID
}
