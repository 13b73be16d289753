package domain

import "time"

// TransactionType decides whether a value adds to or subtracts from the balance.
type TransactionType string

const (
	TypeInflow  TransactionType = "inflow"
	TypeOutflow TransactionType = "outflow"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeInflow || t == TypeOutflow
}

// TransactionDesc classifies a transaction for the summary breakdown.
type TransactionDesc string

const (
	DescDeposit    TransactionDesc = "deposit"
	DescTransfer   TransactionDesc = "transfer"
	DescWithdrawal TransactionDesc = "withdrawal"
	DescPayment    TransactionDesc = "payment"
)

// Descs lists every description category in display order.
var Descs = []TransactionDesc{DescDeposit, DescTransfer, DescWithdrawal, DescPayment}

// Valid reports whether d is one of the known description categories.
func (d TransactionDesc) Valid() bool {
	switch d {
	case DescDeposit, DescTransfer, DescWithdrawal, DescPayment:
		return true
	}
	return false
}

// DateLayout is the day/month/year encoding used for Transaction.Date.
const DateLayout = "02/01/2006"

// Transaction is a single monetary movement owned by one user.
type Transaction struct {
	ID      string          `json:"id"`
	OwnerID string          `json:"owner_id"`
	Date    string          `json:"date"`
	Alias   string          `json:"alias,omitempty"`
	Type    TransactionType `json:"type"`
	Desc    TransactionDesc `json:"desc"`
	Value   float64         `json:"value"`
	// DateKey is the YYYYMMDD ordering key derived from Date; 0 when Date
	// does not parse.
	DateKey int `json:"-"`
}

// TransactionPatch is a partial update. Nil fields are left untouched.
type TransactionPatch struct {
	Date    *string
	Alias   *string
	Type    *TransactionType
	Desc    *TransactionDesc
	Value   *float64
	DateKey *int
}

// Empty reports whether the patch changes no field.
func (p TransactionPatch) Empty() bool {
	return p.Date == nil && p.Alias == nil && p.Type == nil && p.Desc == nil && p.Value == nil
}

// DateKey converts a DD/MM/YYYY date into a sortable YYYYMMDD integer.
// Dates that do not parse map to 0 so they sort as the oldest entries
// instead of failing the query.
func DateKey(date string) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
