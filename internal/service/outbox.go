package service

import (
	"encoding/json"

	"khatapro/internal/model"
)

// newAuditOutbox wraps a history entry as a pending outbox row. Written in
// the same transaction as the entry itself, so downstream consumers see
// exactly the committed audit trail.
func newAuditOutbox(topic string, entry *model.HistoryEntry) *model.OutboxMessage {
	payload, _ := json.Marshal(entry)
	return &model.OutboxMessage{
		MessageKey: entry.EntityID,
		Topic:      topic,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	}
}
