package audit

import (
	"errors"
	"testing"
	"time"

	"khatapro/internal/model"
)

var testActor = Actor{ID: "USR1", Name: "Asad"}

func fixedRecorder(t time.Time) *Recorder {
	return &Recorder{now: func() time.Time { return t }}
}

func TestRecordAppendsNewestFirst(t *testing.T) {
	rec := NewRecorder()
	customer := &model.Customer{ID: "CUS1", Name: "Rahim"}

	first, err := rec.Record(customer, model.ActionCreated, testActor, "Created customer Rahim", nil, nil)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	second, err := rec.Record(customer, model.ActionUpdated, testActor, "Updated customer Rahim", nil, nil)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if len(customer.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(customer.History))
	}
	if customer.History[0].ID != second.ID {
		t.Errorf("history[0] = %s, want newest entry %s", customer.History[0].ID, second.ID)
	}
	if customer.History[1].ID != first.ID {
		t.Errorf("history[1] = %s, want oldest entry %s", customer.History[1].ID, first.ID)
	}
}

func TestRecordStampsEntity(t *testing.T) {
	when := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rec := fixedRecorder(when)
	customer := &model.Customer{ID: "CUS1", Name: "Rahim"}

	entry, err := rec.Record(customer, model.ActionUpdated, testActor, "Updated customer Rahim", nil, nil)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if !customer.UpdatedAt.Equal(when) {
		t.Errorf("UpdatedAt = %v, want %v", customer.UpdatedAt, when)
	}
	if customer.UpdatedBy != testActor.ID {
		t.Errorf("UpdatedBy = %s, want %s", customer.UpdatedBy, testActor.ID)
	}
	if !entry.CreatedAt.Equal(when) {
		t.Errorf("entry CreatedAt = %v, want %v", entry.CreatedAt, when)
	}
	if entry.UserID != testActor.ID || entry.UserName != testActor.Name {
		t.Errorf("entry actor = %s/%s, want %s/%s",
			entry.UserID, entry.UserName, testActor.ID, testActor.Name)
	}
}

func TestRecordEntryFields(t *testing.T) {
	rec := NewRecorder()
	bill := &model.Bill{ID: "BIL1", SerialNo: "AMR-8001"}

	entry, err := rec.Record(bill, model.ActionStatusChanged, testActor, "Bill AMR-8001 marked paid",
		model.FieldValues{"status": model.Text("unpaid")},
		model.FieldValues{"status": model.Text("paid")})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if entry.EntityType != model.EntityTypeBill || entry.EntityID != "BIL1" {
		t.Errorf("entity ref = %s/%s, want bill/BIL1", entry.EntityType, entry.EntityID)
	}
	if entry.Action != model.ActionStatusChanged {
		t.Errorf("action = %s, want %s", entry.Action, model.ActionStatusChanged)
	}
	if entry.OldValues["status"].Value != "unpaid" || entry.NewValues["status"].Value != "paid" {
		t.Errorf("snapshots not carried: old=%v new=%v", entry.OldValues, entry.NewValues)
	}
}

func TestRecordNilEntity(t *testing.T) {
	rec := NewRecorder()
	_, err := rec.Record(nil, model.ActionCreated, testActor, "x", nil, nil)
	if !errors.Is(err, ErrNilEntity) {
		t.Errorf("error = %v, want ErrNilEntity", err)
	}
}

func TestRecordMissingActor(t *testing.T) {
	rec := NewRecorder()
	customer := &model.Customer{ID: "CUS1"}
	_, err := rec.Record(customer, model.ActionCreated, Actor{}, "x", nil, nil)
	if !errors.Is(err, ErrMissingActor) {
		t.Errorf("error = %v, want ErrMissingActor", err)
	}
	if len(customer.History) != 0 {
		t.Errorf("failed record must not touch history, got %d entries", len(customer.History))
	}
}

func TestRecordAsymmetricSnapshots(t *testing.T) {
	rec := NewRecorder()
	tests := []struct {
		name     string
		old, new model.FieldValues
		wantErr  bool
	}{
		{"both nil", nil, nil, false},
		{"symmetric", model.FieldValues{"name": model.Text("a")}, model.FieldValues{"name": model.Text("b")}, false},
		{"only old", model.FieldValues{"name": model.Text("a")}, nil, true},
		{"only new", nil, model.FieldValues{"name": model.Text("b")}, true},
		{"key sets differ", model.FieldValues{"name": model.Text("a")}, model.FieldValues{"phone": model.Text("b")}, true},
		{"lengths differ", model.FieldValues{"name": model.Text("a")},
			model.FieldValues{"name": model.Text("b"), "phone": model.Text("c")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := &model.Customer{ID: "CUS1"}
			_, err := rec.Record(customer, model.ActionUpdated, testActor, "x", tt.old, tt.new)
			if tt.wantErr && !errors.Is(err, ErrAsymmetricSnapshot) {
				t.Errorf("error = %v, want ErrAsymmetricSnapshot", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
