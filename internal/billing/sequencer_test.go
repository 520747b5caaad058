package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"khatapro/internal/audit"
	"khatapro/internal/model"
)

var testActor = audit.Actor{ID: "USR1", Name: "Asad"}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validRequest() *GenerateRequest {
	return &GenerateRequest{
		CustomerName: "Rahim Traders",
		PaymentMode:  "cash",
		Items: []ItemInput{
			{ProductName: "Sugar", Quantity: dec("2"), Price: dec("750")},
			{ProductName: "Rice", Quantity: dec("1"), Price: dec("500")},
		},
	}
}

func TestGenerate(t *testing.T) {
	settings := &model.Settings{ID: "SET1", LastBillSerial: 8000}
	customers := []*model.Customer{{ID: "CUS1", Name: "Rahim Traders"}}

	result, err := Generate(validRequest(), settings, customers, testActor, audit.NewRecorder(), "AMR")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Bill.SerialNo != "AMR-8001" {
		t.Errorf("serial = %s, want AMR-8001", result.Bill.SerialNo)
	}
	if !result.Bill.TotalAmount.Equal(dec("2000")) {
		t.Errorf("total = %s, want 2000", result.Bill.TotalAmount)
	}
	if result.Bill.Status != model.BillStatusUnpaid {
		t.Errorf("status = %s, want unpaid", result.Bill.Status)
	}
	if result.Bill.CustomerID != "CUS1" {
		t.Errorf("customer id = %s, want CUS1", result.Bill.CustomerID)
	}

	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(result.Items))
	}
	if !result.Items[0].Amount.Equal(dec("1500")) || !result.Items[1].Amount.Equal(dec("500")) {
		t.Errorf("item amounts = %s, %s, want 1500, 500",
			result.Items[0].Amount, result.Items[1].Amount)
	}
	for _, item := range result.Items {
		if item.BillID != result.Bill.ID {
			t.Errorf("item %s references bill %s, want %s", item.ID, item.BillID, result.Bill.ID)
		}
	}

	if result.Transaction == nil {
		t.Fatal("resolved customer must produce a ledger debit")
	}
	if result.Transaction.Type != model.TransactionTypeDebit {
		t.Errorf("transaction type = %s, want debit", result.Transaction.Type)
	}
	if !result.Transaction.Amount.Equal(dec("2000")) {
		t.Errorf("transaction amount = %s, want 2000", result.Transaction.Amount)
	}
	if result.Transaction.CustomerID != "CUS1" {
		t.Errorf("transaction customer = %s, want CUS1", result.Transaction.CustomerID)
	}
	// The ledger reference is the human serial, not the bill's primary id.
	if result.Transaction.BillSerial != "AMR-8001" {
		t.Errorf("transaction bill serial = %s, want AMR-8001", result.Transaction.BillSerial)
	}

	if result.Settings.LastBillSerial != 8001 {
		t.Errorf("advanced counter = %d, want 8001", result.Settings.LastBillSerial)
	}
	if settings.LastBillSerial != 8000 {
		t.Errorf("input settings mutated: counter = %d, want 8000", settings.LastBillSerial)
	}

	// bill + 2 items + transaction
	if len(result.History) != 4 {
		t.Errorf("history entries = %d, want 4", len(result.History))
	}
}

func TestGenerateSerialsIncrease(t *testing.T) {
	settings := &model.Settings{ID: "SET1", LastBillSerial: 5}

	first, err := Generate(validRequest(), settings, nil, testActor, audit.NewRecorder(), "AMR")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := Generate(validRequest(), first.Settings, nil, testActor, audit.NewRecorder(), "AMR")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if first.Bill.SerialNo != "AMR-6" || second.Bill.SerialNo != "AMR-7" {
		t.Errorf("serials = %s, %s, want AMR-6, AMR-7", first.Bill.SerialNo, second.Bill.SerialNo)
	}
}

func TestGenerateUnresolvedCustomer(t *testing.T) {
	settings := &model.Settings{ID: "SET1", LastBillSerial: 10}
	customers := []*model.Customer{{ID: "CUS1", Name: "Someone Else"}}

	result, err := Generate(validRequest(), settings, customers, testActor, audit.NewRecorder(), "AMR")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// The bill still issues; it just leaves no ledger trace.
	if result.Transaction != nil {
		t.Error("unresolved customer must not produce a ledger debit")
	}
	if result.Bill.CustomerID != "" {
		t.Errorf("customer id = %s, want empty", result.Bill.CustomerID)
	}
	if result.Bill.SerialNo != "AMR-11" {
		t.Errorf("serial = %s, want AMR-11", result.Bill.SerialNo)
	}
	if len(result.History) != 3 {
		t.Errorf("history entries = %d, want 3 (bill + 2 items)", len(result.History))
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GenerateRequest)
		wantErr error
	}{
		{"empty customer name", func(r *GenerateRequest) { r.CustomerName = "  " }, ErrEmptyCustomerName},
		{"no items", func(r *GenerateRequest) { r.Items = nil }, ErrNoItems},
		{"zero quantity", func(r *GenerateRequest) { r.Items[0].Quantity = dec("0") }, ErrInvalidItem},
		{"negative price", func(r *GenerateRequest) { r.Items[1].Price = dec("-1") }, ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &model.Settings{ID: "SET1", LastBillSerial: 42}
			req := validRequest()
			tt.mutate(req)

			result, err := Generate(req, settings, nil, testActor, audit.NewRecorder(), "AMR")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if result != nil {
				t.Error("failed generation must leave no partial result")
			}
			if settings.LastBillSerial != 42 {
				t.Errorf("failed generation moved the counter to %d", settings.LastBillSerial)
			}
		})
	}
}

func TestResolveCustomer(t *testing.T) {
	customers := []*model.Customer{
		{ID: "CUS1", Name: "Rahim Traders"},
		{ID: "CUS2", Name: "  Karim & Sons "},
	}

	tests := []struct {
		name   string
		wantID string
	}{
		{"Rahim Traders", "CUS1"},
		{"rahim traders", "CUS1"},
		{"  RAHIM TRADERS  ", "CUS1"},
		{"Karim & Sons", "CUS2"},
		{"Rahim", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := ResolveCustomer(tt.name, customers)
		gotID := ""
		if got != nil {
			gotID = got.ID
		}
		if gotID != tt.wantID {
			t.Errorf("ResolveCustomer(%q) = %q, want %q", tt.name, gotID, tt.wantID)
		}
	}
}

func TestRecomputeAmount(t *testing.T) {
	item := &model.BillItem{Quantity: dec("3"), Price: dec("33.50"), Amount: dec("1")}
	RecomputeAmount(item)
	if !item.Amount.Equal(dec("100.50")) {
		t.Errorf("amount = %s, want 100.50", item.Amount)
	}
}

func TestFormatSerial(t *testing.T) {
	if got := FormatSerial("AMR", 8001); got != "AMR-8001" {
		t.Errorf("FormatSerial() = %s, want AMR-8001", got)
	}
}
