// Package ledger derives party balances from transaction history.
//
// A balance is never stored. The transaction journal is the single source of
// truth and the balance is recomputed as the signed sum of the party's
// transactions every time it is asked for. Callers may cache the result for
// display, but only behind explicit invalidation on every transaction write.
package ledger

import (
	"github.com/shopspring/decimal"

	"khatapro/internal/model"
)

// Standing classifies a derived balance for display. A negative balance is
// valid data, not an error - the UI renders it distinctly.
type Standing string

const (
	StandingCredit  Standing = "credit"
	StandingDebit   Standing = "debit"
	StandingSettled Standing = "settled"
)

// BalanceOf folds the given transactions down to the balance of one party.
// Transactions belonging to other parties are skipped, so the caller may
// pass either a pre-filtered slice or the full journal. A party with no
// transactions has balance zero.
//
// An empty entityID also yields zero: the unset side of a transaction's
// customer/company pair is the empty string, so matching it would sum the
// whole journal.
func BalanceOf(entityID string, txns []model.Transaction) decimal.Decimal {
	if entityID == "" {
		return decimal.Zero
	}
	balance := decimal.Zero
	for i := range txns {
		t := &txns[i]
		if t.CustomerID != entityID && t.CompanyID != entityID {
			continue
		}
		balance = balance.Add(t.Signed())
	}
	return balance
}

// Classify maps a balance to its display standing.
func Classify(balance decimal.Decimal) Standing {
	switch balance.Sign() {
	case 1:
		return StandingCredit
	case -1:
		return StandingDebit
	default:
		return StandingSettled
	}
}
