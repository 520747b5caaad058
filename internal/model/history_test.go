package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFieldValueRender(t *testing.T) {
	tests := []struct {
		name string
		val  FieldValue
		want string
	}{
		{"currency gets Rs prefix", Currency(decimal.NewFromInt(750)), "Rs 750.00"},
		{"currency keeps two decimals", Currency(decimal.RequireFromString("10.5")), "Rs 10.50"},
		{"text is verbatim", Text("Rahim Traders"), "Rahim Traders"},
		{"date is yyyy-mm-dd", Date(time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)), "2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldValuesRoundTrip(t *testing.T) {
	original := FieldValues{
		"price": Currency(decimal.NewFromInt(500)),
		"name":  Text("Sugar"),
	}

	stored, err := original.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var loaded FieldValues
	if err := loaded.Scan(stored); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("loaded %d fields, want 2", len(loaded))
	}
	if loaded["price"].Kind != FieldKindCurrency || loaded["price"].Value != "500.00" {
		t.Errorf("price = %+v, want currency 500.00", loaded["price"])
	}
	if loaded["name"].Kind != FieldKindText || loaded["name"].Value != "Sugar" {
		t.Errorf("name = %+v, want text Sugar", loaded["name"])
	}
}

func TestFieldValuesNil(t *testing.T) {
	var f FieldValues
	stored, err := f.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if stored != nil {
		t.Errorf("nil map stored as %v, want NULL", stored)
	}

	var loaded FieldValues
	if err := loaded.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v", err)
	}
	if loaded != nil {
		t.Errorf("Scan(nil) produced %v, want nil", loaded)
	}
}
