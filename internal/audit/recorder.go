// Package audit implements the cross-cutting audit trail recorder.
//
// Every mutation in the system - create, update, delete, status change,
// across every entity kind - goes through Recorder.Record as part of the
// same logical operation. The recorder appends a timestamped, attributed
// history entry to the front of the entity's history and stamps the
// entity's updated_at/updated_by. A mutation without an audit record is a
// correctness defect, so misuse fails loudly instead of no-opping.
package audit

import (
	"errors"
	"time"

	"khatapro/internal/model"
	"khatapro/pkg/idgen"
)

var (
	// ErrNilEntity means Record was called without an entity. This is a
	// programming error, never a tolerable condition: swallowing it would
	// leave a mutation with no audit record.
	ErrNilEntity = errors.New("audit: record called on nil entity")

	// ErrMissingActor means the caller had no authenticated actor context.
	ErrMissingActor = errors.New("audit: missing actor context")

	// ErrAsymmetricSnapshot means exactly one of old/new snapshots was
	// provided, or their key sets differ. The diff renderer pairs values by
	// key, so an asymmetric pair is a data-quality defect at the source.
	ErrAsymmetricSnapshot = errors.New("audit: old/new snapshots must carry identical keys")
)

// Actor identifies who performed a mutation. Supplied by the session layer;
// the recorder treats it as an opaque required input.
type Actor struct {
	ID   string
	Name string
}

// Recorder builds and attaches history entries.
type Recorder struct {
	now func() time.Time
}

// NewRecorder returns a recorder using the wall clock.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// Record appends one history entry for a mutation of entity.
//
// Side effects, by contract:
//   - a new entry is prepended to entity.Meta().History (newest first;
//     consumers render without re-sorting)
//   - entity.UpdatedAt is set to now
//   - entity.UpdatedBy is set to the actor id
//
// oldValues/newValues are optional but must be symmetric when given. The
// returned entry still has to be persisted by the caller, in the same
// database transaction as the entity write.
func (r *Recorder) Record(entity model.Auditable, action string, actor Actor, summary string, oldValues, newValues model.FieldValues) (*model.HistoryEntry, error) {
	if entity == nil {
		return nil, ErrNilEntity
	}
	if actor.ID == "" {
		return nil, ErrMissingActor
	}
	if err := checkSymmetry(oldValues, newValues); err != nil {
		return nil, err
	}

	entityType, entityID := entity.EntityRef()
	now := r.now()

	entry := model.HistoryEntry{
		ID:         idgen.GenerateHistoryID(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserID:     actor.ID,
		UserName:   actor.Name,
		Changes:    summary,
		OldValues:  oldValues,
		NewValues:  newValues,
		CreatedAt:  now,
	}

	meta := entity.Meta()
	meta.History = append([]model.HistoryEntry{entry}, meta.History...)
	meta.UpdatedAt = now
	meta.UpdatedBy = actor.ID

	return &meta.History[0], nil
}

func checkSymmetry(oldValues, newValues model.FieldValues) error {
	if oldValues == nil && newValues == nil {
		return nil
	}
	if oldValues == nil || newValues == nil {
		return ErrAsymmetricSnapshot
	}
	if len(oldValues) != len(newValues) {
		return ErrAsymmetricSnapshot
	}
	for key := range oldValues {
		if _, ok := newValues[key]; !ok {
			return ErrAsymmetricSnapshot
		}
	}
	return nil
}
