// Package billing implements the bill sequencer.
//
// Generate assembles everything one billing operation produces - the bill,
// its line items, an optional ledger debit for the billed customer, the
// audit entries, and the advanced serial counter - as plain records, without
// touching any store. The service layer commits the whole result in a single
// database transaction under the serial lock, so serials are strictly
// increasing and never reused.
package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"khatapro/internal/audit"
	"khatapro/internal/model"
	"khatapro/pkg/idgen"
)

var (
	ErrEmptyCustomerName = errors.New("billing: customer name is required")
	ErrNoItems           = errors.New("billing: bill must have at least one item")
	ErrInvalidItem       = errors.New("billing: item quantity and price must be positive")
)

// ItemInput is one line of a billing request.
type ItemInput struct {
	ProductName string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
}

// GenerateRequest is the input to one billing operation.
type GenerateRequest struct {
	CustomerName string
	PaymentMode  string
	Items        []ItemInput
}

// Result is everything a billing operation produced. All of it must be
// committed atomically or not at all.
type Result struct {
	Bill  *model.Bill
	Items []*model.BillItem
	// Transaction is the ledger debit for the billed customer. Nil when the
	// free-text customer name resolved to no existing customer - the bill
	// still issues, it just leaves no ledger trace.
	Transaction *model.Transaction
	// Settings is a copy with LastBillSerial advanced to this bill's serial.
	Settings *model.Settings
	// History holds every audit entry the operation produced, in creation
	// order, for persistence alongside the records they describe.
	History []*model.HistoryEntry
}

// FormatSerial renders the human-facing serial for counter value n.
func FormatSerial(prefix string, n int64) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}

// ResolveCustomer matches a free-text bill name against the customer
// collection by trimmed, case-insensitive exact comparison. Returns nil
// when nothing matches.
func ResolveCustomer(name string, customers []*model.Customer) *model.Customer {
	want := strings.TrimSpace(name)
	for _, c := range customers {
		if strings.EqualFold(strings.TrimSpace(c.Name), want) {
			return c
		}
	}
	return nil
}

// RecomputeAmount re-derives a line item's amount from its quantity and
// price. Every edit of either factor must go through this - a stale amount
// is never left in place.
func RecomputeAmount(item *model.BillItem) {
	item.Amount = item.Quantity.Mul(item.Price)
}

// Generate runs one billing operation against a snapshot of settings and
// the customer collection.
//
// Validation rejects before anything is built, so a failed call leaves no
// partial result and the settings counter untouched.
func Generate(req *GenerateRequest, settings *model.Settings, customers []*model.Customer, actor audit.Actor, rec *audit.Recorder, serialPrefix string) (*Result, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrEmptyCustomerName
	}
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range req.Items {
		if item.Quantity.Sign() <= 0 || item.Price.Sign() <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidItem, item.ProductName)
		}
	}

	nextSerial := settings.LastBillSerial + 1
	serialNo := FormatSerial(serialPrefix, nextSerial)

	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.Quantity.Mul(item.Price))
	}

	customer := ResolveCustomer(req.CustomerName, customers)

	result := &Result{}

	bill := &model.Bill{
		ID:           idgen.GenerateBillID(),
		SerialNo:     serialNo,
		CustomerName: strings.TrimSpace(req.CustomerName),
		TotalAmount:  total,
		Status:       model.BillStatusUnpaid,
	}
	if customer != nil {
		bill.CustomerID = customer.ID
	}
	bill.CreatedBy = actor.ID

	entry, err := rec.Record(bill, model.ActionCreated, actor,
		fmt.Sprintf("Generated bill %s for %s, total Rs %s", serialNo, bill.CustomerName, total.StringFixed(2)),
		nil, nil)
	if err != nil {
		return nil, err
	}
	result.Bill = bill
	result.History = append(result.History, entry)

	for _, input := range req.Items {
		item := &model.BillItem{
			ID:          idgen.GenerateBillItemID(),
			BillID:      bill.ID,
			ProductName: input.ProductName,
			Quantity:    input.Quantity,
			Price:       input.Price,
		}
		RecomputeAmount(item)
		item.CreatedBy = actor.ID

		entry, err := rec.Record(item, model.ActionCreated, actor,
			fmt.Sprintf("Added %s x %s to bill %s", input.ProductName, input.Quantity.String(), serialNo),
			nil, nil)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, item)
		result.History = append(result.History, entry)
	}

	if customer != nil {
		txn := &model.Transaction{
			ID:         idgen.GenerateTransactionID(),
			CustomerID: customer.ID,
			Date:       time.Now(),
			Amount:     total,
			Type:       model.TransactionTypeDebit,
			// The ledger carries the human-facing serial, not the bill's
			// primary id - see the note on model.Transaction.
			BillSerial:  serialNo,
			PaymentMode: req.PaymentMode,
			Description: fmt.Sprintf("Bill %s", serialNo),
		}
		txn.CreatedBy = actor.ID

		entry, err := rec.Record(txn, model.ActionCreated, actor,
			fmt.Sprintf("Debit Rs %s against bill %s", total.StringFixed(2), serialNo),
			nil, nil)
		if err != nil {
			return nil, err
		}
		result.Transaction = txn
		result.History = append(result.History, entry)
	}

	updated := *settings
	updated.History = nil
	updated.LastBillSerial = nextSerial
	result.Settings = &updated

	return result, nil
}
