package audit

import (
	"testing"

	"github.com/shopspring/decimal"

	"khatapro/internal/model"
)

func TestDiffRendersPairs(t *testing.T) {
	entry := &model.HistoryEntry{
		ID: "HIS1",
		OldValues: model.FieldValues{
			"price": model.Currency(decimal.NewFromInt(500)),
			"name":  model.Text("Sugar"),
		},
		NewValues: model.FieldValues{
			"price": model.Currency(decimal.NewFromInt(750)),
			"name":  model.Text("Sugar 1kg"),
		},
	}

	changes := Diff(entry)
	if len(changes) != 2 {
		t.Fatalf("Diff() returned %d changes, want 2", len(changes))
	}

	// Keys are sorted, so "name" comes first.
	if changes[0].Field != "name" || changes[1].Field != "price" {
		t.Errorf("fields not sorted: %s, %s", changes[0].Field, changes[1].Field)
	}
	if changes[1].Old != "Rs 500.00" || changes[1].New != "Rs 750.00" {
		t.Errorf("currency rendering = %q -> %q, want Rs 500.00 -> Rs 750.00",
			changes[1].Old, changes[1].New)
	}
	if changes[0].Old != "Sugar" || changes[0].New != "Sugar 1kg" {
		t.Errorf("text rendering = %q -> %q", changes[0].Old, changes[0].New)
	}
	for _, c := range changes {
		if c.Incomplete {
			t.Errorf("symmetric pair %s flagged incomplete", c.Field)
		}
	}
}

func TestDiffMissingCounterpart(t *testing.T) {
	// Stored history predating the symmetry check can carry lone values.
	entry := &model.HistoryEntry{
		ID:        "HIS1",
		OldValues: model.FieldValues{"phone": model.Text("0301")},
		NewValues: model.FieldValues{},
	}

	changes := Diff(entry)
	if len(changes) != 1 {
		t.Fatalf("Diff() returned %d changes, want 1", len(changes))
	}
	if changes[0].New != "N/A" {
		t.Errorf("missing side = %q, want N/A", changes[0].New)
	}
	if changes[0].Old != "0301" {
		t.Errorf("present side = %q, want 0301", changes[0].Old)
	}
	if !changes[0].Incomplete {
		t.Error("asymmetric pair not flagged incomplete")
	}
}

func TestDiffEmpty(t *testing.T) {
	entry := &model.HistoryEntry{ID: "HIS1"}
	if changes := Diff(entry); changes != nil {
		t.Errorf("Diff() of empty snapshots = %v, want nil", changes)
	}
}
