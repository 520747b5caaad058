package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"khatapro/internal/model"
)

func credit(party, amount string) model.Transaction {
	return model.Transaction{
		CustomerID: party,
		Amount:     decimal.RequireFromString(amount),
		Type:       model.TransactionTypeCredit,
	}
}

func debit(party, amount string) model.Transaction {
	return model.Transaction{
		CustomerID: party,
		Amount:     decimal.RequireFromString(amount),
		Type:       model.TransactionTypeDebit,
	}
}

func TestBalanceOf(t *testing.T) {
	tests := []struct {
		name string
		txns []model.Transaction
		want string
	}{
		{
			name: "no transactions",
			txns: nil,
			want: "0",
		},
		{
			name: "credit minus debit",
			txns: []model.Transaction{
				credit("CUS1", "1500"),
				debit("CUS1", "500"),
			},
			want: "1000",
		},
		{
			name: "net negative balance is valid data",
			txns: []model.Transaction{
				credit("CUS1", "200"),
				debit("CUS1", "350"),
			},
			want: "-150",
		},
		{
			name: "other parties are skipped",
			txns: []model.Transaction{
				credit("CUS1", "100"),
				credit("CUS2", "9999"),
				debit("CUS1", "40"),
			},
			want: "60",
		},
		{
			name: "fractional amounts",
			txns: []model.Transaction{
				credit("CUS1", "10.25"),
				debit("CUS1", "0.25"),
			},
			want: "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BalanceOf("CUS1", tt.txns)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("BalanceOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

// The fold is a sum, so transaction order must not matter.
func TestBalanceOfOrderIndependent(t *testing.T) {
	forward := []model.Transaction{
		credit("CUS1", "1500"),
		debit("CUS1", "500"),
		credit("CUS1", "75.50"),
	}
	reversed := []model.Transaction{forward[2], forward[1], forward[0]}

	a := BalanceOf("CUS1", forward)
	b := BalanceOf("CUS1", reversed)
	if !a.Equal(b) {
		t.Errorf("order changed the balance: %s vs %s", a, b)
	}
}

// An empty entity id must not match the unset side of the customer/company
// pair and sweep up the whole journal.
func TestBalanceOfEmptyEntityID(t *testing.T) {
	txns := []model.Transaction{
		credit("CUS1", "1500"),
		{CompanyID: "CMP1", Amount: decimal.NewFromInt(300), Type: model.TransactionTypeCredit},
	}
	got := BalanceOf("", txns)
	if !got.IsZero() {
		t.Errorf("BalanceOf(\"\") = %s, want 0", got)
	}
}

func TestBalanceOfCompanyParty(t *testing.T) {
	txns := []model.Transaction{
		{CompanyID: "CMP1", Amount: decimal.NewFromInt(300), Type: model.TransactionTypeCredit},
		{CompanyID: "CMP1", Amount: decimal.NewFromInt(100), Type: model.TransactionTypeDebit},
	}
	got := BalanceOf("CMP1", txns)
	if !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("BalanceOf() = %s, want 200", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		balance string
		want    Standing
	}{
		{"100", StandingCredit},
		{"-0.01", StandingDebit},
		{"0", StandingSettled},
	}

	for _, tt := range tests {
		got := Classify(decimal.RequireFromString(tt.balance))
		if got != tt.want {
			t.Errorf("Classify(%s) = %s, want %s", tt.balance, got, tt.want)
		}
	}
}
