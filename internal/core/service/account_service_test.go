package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bytebank/ledger-api/internal/core/domain"
	"github.com/bytebank/ledger-api/internal/core/ports"
)

type accountFixture struct {
	svc    *AccountService
	users  *stubUserRepo
	txs    *stubTxRepo
	tokens *TokenService
	revoke *stubRevocations
}

func newAccountFixture() *accountFixture {
	users := newStubUserRepo()
	txs := &stubTxRepo{}
	revoke := newStubRevocations()
	tokens := NewTokenService("secret", time.Hour, WithRevocation(revoke))
	svc := NewAccountService(users, txs, NewCredentials(bcrypt.MinCost), tokens, zerolog.Nop()).
		RevokeOnDelete(revoke, tokens.TTL())
	return &accountFixture{svc: svc, users: users, txs: txs, tokens: tokens, revoke: revoke}
}

func (f *accountFixture) register(t *testing.T, email, password string) *ports.AuthResult {
	t.Helper()
	res, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name:          "Ana",
		Email:         email,
		Password:      password,
		AcceptPrivacy: true,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return res
}

func TestAccountService_Register_Success(t *testing.T) {
	f := newAccountFixture()

	res := f.register(t, "Ana@Example.com ", "secret1")
	if res.Token == "" {
		t.Fatal("expected token")
	}
	if res.User.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", res.User.Email)
	}
	if res.User.PasswordHash == "secret1" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := f.tokens.Verify(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.Subject != res.User.ID {
		t.Errorf("expected subject %q, got %q", res.User.ID, claims.Subject)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ana@example.com", "secret1")

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name: "Other", Email: "ana@example.com", Password: "secret2",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got := domain.PublicMessage(err); got != "Failed to register user: "+domain.MsgUserExists {
		t.Errorf("unexpected message %q", got)
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	f := newAccountFixture()

	cases := []ports.RegisterInput{
		{Name: "", Email: "a@b.co", Password: "secret1"},
		{Name: "Ana", Email: " ", Password: "secret1"},
		{Name: "Ana", Email: "a@b.co", Password: "123"},
	}
	for _, in := range cases {
		if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Register(%+v): expected validation error, got %v", in, err)
		}
	}
	if len(f.users.users) != 0 {
		t.Errorf("no user must be stored, got %d", len(f.users.users))
	}
}

func TestAccountService_Login(t *testing.T) {
	f := newAccountFixture()
	reg := f.register(t, "ana@example.com", "secret1")

	res, err := f.svc.Login(context.Background(), "ana@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.ID != reg.User.ID || res.Token == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAccountService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ana@example.com", "secret1")

	_, wrongPass := f.svc.Login(context.Background(), "ana@example.com", "badpass")
	_, unknown := f.svc.Login(context.Background(), "ghost@example.com", "secret1")

	for _, err := range []error{wrongPass, unknown} {
		if !errors.Is(err, domain.ErrAuthentication) {
			t.Fatalf("expected authentication error, got %v", err)
		}
	}
	if wrongPass.Error() != unknown.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPass.Error(), unknown.Error())
	}
}

func TestAccountService_Login_StorageFailureIsInternal(t *testing.T) {
	f := newAccountFixture()
	f.users.findErr = errors.New("connection reset")

	_, err := f.svc.Login(context.Background(), "ana@example.com", "secret1")
	if domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if got := domain.PublicMessage(err); got != "Failed to login" {
		t.Errorf("cause leaked: %q", got)
	}
}

func TestAccountService_Me(t *testing.T) {
	f := newAccountFixture()
	reg := f.register(t, "ana@example.com", "secret1")

	u, err := f.svc.Me(context.Background(), reg.User.ID)
	if err != nil || u == nil || u.Email != "ana@example.com" {
		t.Fatalf("unexpected Me result: %+v, %v", u, err)
	}

	u, err = f.svc.Me(context.Background(), "gone")
	if err != nil || u != nil {
		t.Fatalf("expected nil, nil for missing user, got %+v, %v", u, err)
	}
}

func TestAccountService_UpdateUser_RehashesPassword(t *testing.T) {
	f := newAccountFixture()
	reg := f.register(t, "ana@example.com", "secret1")
	oldHash := reg.User.PasswordHash

	newPass := "brand-new"
	u, err := f.svc.UpdateUser(context.Background(), reg.User.ID, ports.UpdateUserInput{Password: &newPass})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if u.PasswordHash == newPass || u.PasswordHash == oldHash {
		t.Fatal("expected a new hash, never plaintext")
	}
	if _, err := f.svc.Login(context.Background(), "ana@example.com", newPass); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAccountService_UpdateUser_BlankPasswordIgnored(t *testing.T) {
	f := newAccountFixture()
	reg := f.register(t, "ana@example.com", "secret1")

	blank := "   "
	name := "Ana Maria"
	u, err := f.svc.UpdateUser(context.Background(), reg.User.ID, ports.UpdateUserInput{Name: &name, Password: &blank})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if u.Name != name {
		t.Errorf("expected name %q, got %q", name, u.Name)
	}
	if u.PasswordHash != reg.User.PasswordHash {
		t.Error("blank password must leave the hash untouched")
	}
}

func TestAccountService_UpdateUser_EmailConflict(t *testing.T) {
	f := newAccountFixture()
	ana := f.register(t, "ana@example.com", "secret1")
	f.register(t, "bea@example.com", "secret1")

	taken := "bea@example.com"
	_, err := f.svc.UpdateUser(context.Background(), ana.User.ID, ports.UpdateUserInput{Email: &taken})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	own := "ana@example.com"
	if _, err := f.svc.UpdateUser(context.Background(), ana.User.ID, ports.UpdateUserInput{Email: &own}); err != nil {
		t.Fatalf("keeping own email must succeed, got %v", err)
	}
}

func TestAccountService_UpdateUser_ShortPasswordRejected(t *testing.T) {
	f := newAccountFixture()
	reg := f.register(t, "ana@example.com", "secret1")

	short := "abc"
	_, err := f.svc.UpdateUser(context.Background(), reg.User.ID, ports.UpdateUserInput{Password: &short})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountService_DeleteUser_Cascade(t *testing.T) {
	f := newAccountFixture()
	var calls []string
	f.users.calls = &calls
	f.txs.calls = &calls

	ana := f.register(t, "ana@example.com", "secret1")
	bea := f.register(t, "bea@example.com", "secret1")
	f.txs.txs = []*domain.Transaction{
		{ID: "t1", OwnerID: ana.User.ID},
		{ID: "t2", OwnerID: ana.User.ID},
		{ID: "t3", OwnerID: bea.User.ID},
	}

	if err := f.svc.DeleteUser(context.Background(), ana.User.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	want := []string{"transactions.DeleteByOwner", "users.Delete"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("expected call order %v, got %v", want, calls)
	}
	if len(f.txs.txs) != 1 || f.txs.txs[0].OwnerID != bea.User.ID {
		t.Errorf("expected only bea's transaction to remain, got %+v", f.txs.txs)
	}
	if _, ok := f.users.users[ana.User.ID]; ok {
		t.Error("user must be deleted")
	}
	if ttl, ok := f.revoke.revoked[ana.User.ID]; !ok || ttl != time.Hour {
		t.Errorf("expected subject revoked for token TTL, got %v (present=%v)", ttl, ok)
	}
	if _, err := f.tokens.Verify(context.Background(), ana.Token); !errors.Is(err, domain.ErrAuthentication) {
		t.Errorf("expected old token rejected after delete, got %v", err)
	}
}

func TestAccountService_DeleteUser_PartialFailure(t *testing.T) {
	f := newAccountFixture()
	ana := f.register(t, "ana@example.com", "secret1")
	f.txs.txs = []*domain.Transaction{{ID: "t1", OwnerID: ana.User.ID}}
	f.users.deleteErr = errors.New("write concern timeout")

	err := f.svc.DeleteUser(context.Background(), ana.User.ID)
	if domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(f.txs.txs) != 0 {
		t.Error("transactions are deleted before the user step")
	}
	if _, ok := f.users.users[ana.User.ID]; !ok {
		t.Error("user must remain after failed delete")
	}
	if _, ok := f.revoke.revoked[ana.User.ID]; ok {
		t.Error("tokens must not be revoked when the user still exists")
	}
}

func TestAccountService_DeleteUser_RevocationFailureIgnored(t *testing.T) {
	f := newAccountFixture()
	ana := f.register(t, "ana@example.com", "secret1")
	f.revoke.revokeErr = errors.New("redis down")

	if err := f.svc.DeleteUser(context.Background(), ana.User.ID); err != nil {
		t.Fatalf("revocation failure must not fail the delete, got %v", err)
	}
}

func TestAccountService_ValidatePassword(t *testing.T) {
	f := newAccountFixture()
	reg := f.register(t, "ana@example.com", "secret1")

	ok, err := f.svc.ValidatePassword(context.Background(), reg.User.ID, "secret1")
	if err != nil || !ok {
		t.Fatalf("expected true, got %v, %v", ok, err)
	}
	ok, err = f.svc.ValidatePassword(context.Background(), reg.User.ID, "nope")
	if err != nil || ok {
		t.Fatalf("expected false, got %v, %v", ok, err)
	}

	_, err = f.svc.ValidatePassword(context.Background(), "gone", "secret1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
