package audit

import (
	"sort"

	"khatapro/internal/logger"
	"khatapro/internal/model"
)

// missingCounterpart is rendered when one side of a diff has no value for a
// key the other side carries. Stored history predating the symmetry check
// can contain such pairs; they render as N/A but are flagged.
const missingCounterpart = "N/A"

// FieldChange is one rendered row of a history diff.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
	// Incomplete marks a pair whose counterpart was missing. This is a
	// data-quality issue in the stored history, not normal operation.
	Incomplete bool `json:"incomplete,omitempty"`
}

// Diff pairs the before/after snapshots of a history entry by field name
// and renders each side. Keys are sorted so output is stable. Asymmetric
// pairs render N/A on the missing side and are logged at warn.
func Diff(entry *model.HistoryEntry) []FieldChange {
	if len(entry.OldValues) == 0 && len(entry.NewValues) == 0 {
		return nil
	}

	keys := make(map[string]struct{}, len(entry.OldValues))
	for k := range entry.OldValues {
		keys[k] = struct{}{}
	}
	for k := range entry.NewValues {
		keys[k] = struct{}{}
	}

	ordered := make([]string, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	sort.Strings(ordered)

	log := logger.WithComponent("audit")

	changes := make([]FieldChange, 0, len(ordered))
	for _, field := range ordered {
		change := FieldChange{Field: field, Old: missingCounterpart, New: missingCounterpart}

		oldVal, hasOld := entry.OldValues[field]
		newVal, hasNew := entry.NewValues[field]
		if hasOld {
			change.Old = oldVal.Render()
		}
		if hasNew {
			change.New = newVal.Render()
		}
		if !hasOld || !hasNew {
			change.Incomplete = true
			log.Warn().
				Str("history_id", entry.ID).
				Str("field", field).
				Msg("history snapshot missing a diff counterpart")
		}

		changes = append(changes, change)
	}
	return changes
}
