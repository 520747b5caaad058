package model

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{BillStatusUnpaid, BillStatusPaid, true},
		{BillStatusUnpaid, BillStatusCancelled, true},
		{BillStatusPaid, BillStatusUnpaid, true},
		{BillStatusPaid, BillStatusCancelled, false},
		{BillStatusCancelled, BillStatusUnpaid, false},
		{BillStatusCancelled, BillStatusPaid, false},
		{BillStatusUnpaid, BillStatusUnpaid, false},
		{"bogus", BillStatusPaid, false},
	}

	for _, tt := range tests {
		if got := CanTransitionTo(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
