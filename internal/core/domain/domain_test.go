package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewPageRequest_Clamps(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-4, 10, 1, 10},
		{2, 100, 2, 50},
		{2, 50, 2, 50},
		{3, 0, 3, 1},
		{3, -1, 3, 1},
	}

	for _, tc := range cases {
		got := NewPageRequest(tc.page, tc.limit)
		if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
			t.Errorf("NewPageRequest(%d, %d) = %+v, want page=%d limit=%d",
				tc.page, tc.limit, got, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestPageRequest_SkipAndTotalPages(t *testing.T) {
	req := NewPageRequest(3, 10)
	if req.Skip() != 20 {
		t.Errorf("skip: expected 20, got %d", req.Skip())
	}

	cases := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
	}
	for _, tc := range cases {
		if got := req.TotalPages(tc.total); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestDateKey(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"20/04/2025", 20250420},
		{"01/12/1999", 19991201},
		{"31/02/2025", 0}, // not a calendar date
		{"2025-04-20", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := DateKey(tc.date); got != tc.want {
			t.Errorf("DateKey(%q) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestTransactionEnums_Valid(t *testing.T) {
	if !TypeInflow.Valid() || !TypeOutflow.Valid() {
		t.Error("known types must be valid")
	}
	if TransactionType("Entrada").Valid() {
		t.Error("unknown type must be invalid")
	}
	for _, d := range Descs {
		if !d.Valid() {
			t.Errorf("desc %q must be valid", d)
		}
	}
	if TransactionDesc("refund").Valid() {
		t.Error("unknown desc must be invalid")
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize([]*Transaction{
		{Type: TypeInflow, Desc: DescDeposit, Value: 200},
		{Type: TypeOutflow, Desc: DescWithdrawal, Value: 50},
	})

	if got.Balance != 150 {
		t.Errorf("balance: expected 150, got %v", got.Balance)
	}
	want := Breakdown{Deposit: 200, Withdrawal: 50}
	if got.Breakdown != want {
		t.Errorf("breakdown: expected %+v, got %+v", want, got.Breakdown)
	}
}

func TestSummarize_EmptyIsZero(t *testing.T) {
	got := Summarize(nil)
	if got.Balance != 0 || got.Breakdown != (Breakdown{}) {
		t.Errorf("expected zero summary, got %+v", got)
	}
}

func TestSummarize_NoFloatDrift(t *testing.T) {
	var txs []*Transaction
	for i := 0; i < 10; i++ {
		txs = append(txs, &Transaction{Type: TypeInflow, Desc: DescPayment, Value: 0.1})
	}
	got := Summarize(txs)
	if got.Balance != 1 {
		t.Errorf("expected balance 1, got %v", got.Balance)
	}
	if got.Breakdown.Payment != 1 {
		t.Errorf("expected payment 1, got %v", got.Breakdown.Payment)
	}
}

func TestError_KindsAndWrapping(t *testing.T) {
	base := NotFoundf("Transaction with id %s not found or unauthorized", "abc")
	wrapped := Wrap("Failed to update transaction", base)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(wrapped, ErrConflict) {
		t.Fatalf("wrapped not-found must not match ErrConflict")
	}
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", KindOf(wrapped))
	}
	if !strings.Contains(wrapped.Error(), "not found or unauthorized") {
		t.Errorf("message lost: %q", wrapped.Error())
	}
	if PublicMessage(wrapped) != wrapped.Error() {
		t.Errorf("expected full message for non-internal errors, got %q", PublicMessage(wrapped))
	}
}

func TestError_InternalHidesCause(t *testing.T) {
	raw := fmt.Errorf("connection refused to 10.0.0.3:27017")
	err := Wrap("Failed to fetch transactions", raw)

	if KindOf(err) != KindInternal {
		t.Fatalf("raw errors must be classified as internal")
	}
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal match")
	}
	if got := PublicMessage(err); got != "Failed to fetch transactions" {
		t.Errorf("public message leaked cause: %q", got)
	}
	if !errors.Is(err, raw) {
		t.Errorf("cause must stay reachable for logging")
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap("op", nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
}
