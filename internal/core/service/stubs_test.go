package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bytebank/ledger-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	seq       int
	findErr   error
	deleteErr error
	calls     *[]string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) record(call string) {
	if r.calls != nil {
		*r.calls = append(*r.calls, call)
	}
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.NotFoundf("user %s", id)
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NotFoundf("user with email %s", email)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.Conflict(domain.MsgUserExists)
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFoundf("user %s", id)
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.AcceptPrivacy != nil {
		u.AcceptPrivacy = *patch.AcceptPrivacy
	}
	u.UpdatedAt = patch.UpdatedAt
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.record("users.Delete")
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return domain.NotFoundf("user %s", id)
	}
	delete(r.users, id)
	return nil
}

type stubTxRepo struct {
	txs      []*domain.Transaction
	seq      int
	err      error
	calls    *[]string
	lastSkip int
	lastLim  int
}

func (r *stubTxRepo) record(call string) {
	if r.calls != nil {
		*r.calls = append(*r.calls, call)
	}
}

func (r *stubTxRepo) owned(ownerID string) []*domain.Transaction {
	var out []*domain.Transaction
	for _, t := range r.txs {
		if t.OwnerID == ownerID {
			c := *t
			out = append(out, &c)
		}
	}
	// Same order the storage layer guarantees: date key desc, newest insert first.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DateKey != out[j].DateKey {
			return out[i].DateKey > out[j].DateKey
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *stubTxRepo) FindByOwner(_ context.Context, ownerID string, skip, limit int) ([]*domain.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastSkip, r.lastLim = skip, limit
	all := r.owned(ownerID)
	if skip >= len(all) {
		return nil, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (r *stubTxRepo) FindAllByOwner(_ context.Context, ownerID string) ([]*domain.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.owned(ownerID), nil
}

func (r *stubTxRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.owned(ownerID))), nil
}

func (r *stubTxRepo) find(id, ownerID string) (int, bool) {
	for i, t := range r.txs {
		if t.ID == id && t.OwnerID == ownerID {
			return i, true
		}
	}
	return -1, false
}

func (r *stubTxRepo) FindOne(_ context.Context, id, ownerID string) (*domain.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	i, ok := r.find(id, ownerID)
	if !ok {
		return nil, domain.NotFoundf("transaction %s", id)
	}
	c := *r.txs[i]
	return &c, nil
}

func (r *stubTxRepo) Insert(_ context.Context, t *domain.Transaction) error {
	if r.err != nil {
		return r.err
	}
	r.seq++
	t.ID = fmt.Sprintf("tx-%03d", r.seq)
	c := *t
	r.txs = append(r.txs, &c)
	return nil
}

func (r *stubTxRepo) Update(_ context.Context, id, ownerID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	i, ok := r.find(id, ownerID)
	if !ok {
		return nil, domain.NotFoundf("transaction %s", id)
	}
	t := r.txs[i]
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.DateKey != nil {
		t.DateKey = *patch.DateKey
	}
	if patch.Alias != nil {
		t.Alias = *patch.Alias
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Desc != nil {
		t.Desc = *patch.Desc
	}
	if patch.Value != nil {
		t.Value = *patch.Value
	}
	c := *t
	return &c, nil
}

func (r *stubTxRepo) Delete(_ context.Context, id, ownerID string) error {
	if r.err != nil {
		return r.err
	}
	i, ok := r.find(id, ownerID)
	if !ok {
		return domain.NotFoundf("transaction %s", id)
	}
	r.txs = append(r.txs[:i], r.txs[i+1:]...)
	return nil
}

func (r *stubTxRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	r.record("transactions.DeleteByOwner")
	if r.err != nil {
		return 0, r.err
	}
	kept := r.txs[:0]
	var n int64
	for _, t := range r.txs {
		if t.OwnerID == ownerID {
			n++
			continue
		}
		kept = append(kept, t)
	}
	r.txs = kept
	return n, nil
}

type stubRevocations struct {
	revoked   map[string]time.Duration
	lookupErr error
	revokeErr error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Duration)}
}

func (s *stubRevocations) IsRevoked(_ context.Context, subject string) (bool, error) {
	if s.lookupErr != nil {
		return false, s.lookupErr
	}
	_, ok := s.revoked[subject]
	return ok, nil
}

func (s *stubRevocations) Revoke(_ context.Context, subject string, ttl time.Duration) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked[subject] = ttl
	return nil
}
