package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// Audit history
// ============================================================================
//
// History rows are the audit trail. Design rules, same as a ledger journal:
//   1. append only - never updated, never deleted, even when the audited
//      record itself is deleted
//   2. every row names its actor - user id and display name are denormalized
//      so the trail survives user edits
//   3. optional before/after snapshots allow diff rendering; when present
//      they must carry identical key sets
// ============================================================================

// HistoryEntry is one immutable audit record for a single mutation.
type HistoryEntry struct {
	ID         string      `gorm:"type:varchar(64);primaryKey" json:"id"`
	EntityType string      `gorm:"type:varchar(32);index:idx_history_entity;not null" json:"entity_type"`
	EntityID   string      `gorm:"type:varchar(64);index:idx_history_entity;not null" json:"entity_id"`
	Action     string      `gorm:"type:varchar(20);not null" json:"action"`
	UserID     string      `gorm:"type:varchar(64);not null" json:"user_id"`
	UserName   string      `gorm:"type:varchar(128);not null" json:"user_name"`
	Changes    string      `gorm:"type:varchar(512)" json:"changes"`
	OldValues  FieldValues `gorm:"type:text" json:"old_values,omitempty"`
	NewValues  FieldValues `gorm:"type:text" json:"new_values,omitempty"`
	CreatedAt  time.Time   `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (HistoryEntry) TableName() string {
	return "history_entry"
}

// FieldKind tags a snapshot value so the diff renderer branches on an
// explicit variant instead of a runtime type check.
type FieldKind string

const (
	FieldKindCurrency FieldKind = "currency"
	FieldKindText     FieldKind = "text"
	FieldKindDate     FieldKind = "date"
)

// FieldValue is one tagged before/after snapshot value.
type FieldValue struct {
	Kind  FieldKind `json:"kind"`
	Value string    `json:"value"`
}

// Currency builds a currency-tagged value with two fixed decimals.
func Currency(d decimal.Decimal) FieldValue {
	return FieldValue{Kind: FieldKindCurrency, Value: d.StringFixed(2)}
}

// Text builds a text-tagged value.
func Text(s string) FieldValue {
	return FieldValue{Kind: FieldKindText, Value: s}
}

// Date builds a date-tagged value.
func Date(t time.Time) FieldValue {
	return FieldValue{Kind: FieldKindDate, Value: t.Format("2006-01-02")}
}

// Render returns the display form of the value.
func (v FieldValue) Render() string {
	switch v.Kind {
	case FieldKindCurrency:
		return "Rs " + v.Value
	default:
		return v.Value
	}
}

// FieldValues maps field name to its tagged snapshot value. Stored as JSON
// in a text column.
type FieldValues map[string]FieldValue

// Value implements driver.Valuer.
func (f FieldValues) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (f *FieldValues) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FieldValues", value)
	}
	if len(data) == 0 {
		*f = nil
		return nil
	}
	return json.Unmarshal(data, f)
}
