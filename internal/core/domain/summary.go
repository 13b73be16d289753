package domain

import "github.com/shopspring/decimal"

// Breakdown is the per-description running sum of transaction values.
// Every category is always present; absent categories are zero.
type Breakdown struct {
	Deposit    float64 `json:"deposit"`
	Transfer   float64 `json:"transfer"`
	Withdrawal float64 `json:"withdrawal"`
	Payment    float64 `json:"payment"`
}

// Summary is the aggregate view over all of a user's transactions.
type Summary struct {
	Balance   float64   `json:"balance"`
	Breakdown Breakdown `json:"breakdown"`
}

// Summarize folds txs into a balance and a breakdown. Inflows add to the
// balance, outflows subtract; the breakdown always adds the raw value.
// Sums are accumulated as decimals so repeated cents do not drift.
func Summarize(txs []*Transaction) Summary {
	balance := decimal.Zero
	sums := make(map[TransactionDesc]decimal.Decimal, len(Descs))
	for _, d := range Descs {
		sums[d] = decimal.Zero
	}

	for _, t := range txs {
		v := decimal.NewFromFloat(t.Value)
		if t.Type == TypeInflow {
			balance = balance.Add(v)
		} else {
			balance = balance.Sub(v)
		}
		if _, ok := sums[t.Desc]; ok {
			sums[t.Desc] = sums[t.Desc].Add(v)
		}
	}

	return Summary{
		Balance: balance.InexactFloat64(),
		Breakdown: Breakdown{
			Deposit:    sums[DescDeposit].InexactFloat64(),
			Transfer:   sums[DescTransfer].InexactFloat64(),
			Withdrawal: sums[DescWithdrawal].InexactFloat64(),
			Payment:    sums[DescPayment].InexactFloat64(),
		},
	}
}
