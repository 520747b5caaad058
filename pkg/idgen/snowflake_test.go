package idgen

import (
	"strings"
	"testing"
)

func TestGeneratedIDsCarryPrefix(t *testing.T) {
	Init(1)

	tests := []struct {
		prefix   string
		generate func() string
	}{
		{"CUS", GenerateCustomerID},
		{"CMP", GenerateCompanyID},
		{"TXN", GenerateTransactionID},
		{"BIL", GenerateBillID},
		{"BLI", GenerateBillItemID},
		{"PRD", GenerateProductID},
		{"HIS", GenerateHistoryID},
		{"SET", GenerateSettingsID},
	}

	for _, tt := range tests {
		id := tt.generate()
		if !strings.HasPrefix(id, tt.prefix) {
			t.Errorf("id %s missing prefix %s", id, tt.prefix)
		}
		// prefix + 14 digit timestamp + 8 digit suffix
		if len(id) != len(tt.prefix)+22 {
			t.Errorf("id %s has length %d, want %d", id, len(id), len(tt.prefix)+22)
		}
	}
}

func TestNextIDUnique(t *testing.T) {
	Init(1)

	seen := make(map[int64]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NextID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d at iteration %d", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestNextIDIncreasing(t *testing.T) {
	Init(1)

	prev := NextID()
	for i := 0; i < 1000; i++ {
		next := NextID()
		if next <= prev {
			t.Fatalf("id %d not greater than previous %d", next, prev)
		}
		prev = next
	}
}
