package model

import (
	"time"
)

// Audit actions.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionStatusChanged = "status_changed"
)

// AuditMeta is embedded by every record that participates in the audit trail.
//
// Contract: UpdatedAt and UpdatedBy are rewritten by the audit recorder on
// every mutation that also appends a history entry; History is append-only
// and ordered newest first. The slice itself is not a column - history rows
// live in their own table and are attached when a record is loaded in detail.
type AuditMeta struct {
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	CreatedBy string         `gorm:"type:varchar(64)" json:"created_by"`
	UpdatedBy string         `gorm:"type:varchar(64)" json:"updated_by"`
	History   []HistoryEntry `gorm:"-" json:"history,omitempty"`
}

// Meta exposes the embedded audit fields through the Auditable interface.
func (m *AuditMeta) Meta() *AuditMeta {
	return m
}

// Auditable is any record the audit recorder can stamp. Each model supplies
// its own entity type tag and id; AuditMeta supplies the rest by embedding.
type Auditable interface {
	EntityRef() (entityType string, entityID string)
	Meta() *AuditMeta
}
