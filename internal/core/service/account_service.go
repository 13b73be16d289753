package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bytebank/ledger-api/internal/core/domain"
	"github.com/bytebank/ledger-api/internal/core/ports"
)

var _ ports.AccountService = (*AccountService)(nil)

// AccountService implements registration, login and profile management.
type AccountService struct {
	users   ports.UserRepository
	txs     ports.TransactionRepository
	creds   *Credentials
	tokens  ports.TokenIssuer
	revoked ports.RevocationStore
	// revokeFor is how long a deleted subject stays on the revocation list;
	// it only needs to outlive the longest token that may still be in use.
	revokeFor time.Duration
	log       zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	txs ports.TransactionRepository,
	creds *Credentials,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:  users,
		txs:    txs,
		creds:  creds,
		tokens: tokens,
		log:    log,
	}
}

// RevokeOnDelete makes DeleteUser put the deleted subject on store for ttl,
// invalidating tokens issued before the deletion.
func (s *AccountService) RevokeOnDelete(store ports.RevocationStore, ttl time.Duration) *AccountService {
	s.revoked = store
	s.revokeFor = ttl
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register opens a new account and returns it with a fresh token.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	const op = "Failed to register user"

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" {
		return nil, domain.Wrap(op, domain.Validationf("Name is required"))
	}
	if email == "" {
		return nil, domain.Wrap(op, domain.Validationf("Email is required"))
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.Wrap(op, domain.Conflict(domain.MsgUserExists))
	case !errors.Is(err, domain.ErrNotFound):
		return nil, domain.Wrap(op, err)
	}

	hash, err := s.creds.Hash(in.Password)
	if err != nil {
		return nil, domain.Wrap(op, err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		AcceptPrivacy: in.AcceptPrivacy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, domain.Wrap(op, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, domain.Wrap(op, err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Login exchanges credentials for a token. An unknown email and a wrong
// password produce the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	const op = "Failed to login"

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Wrap(op, domain.Authentication(domain.MsgInvalidCredentials))
		}
		return nil, domain.Wrap(op, err)
	}

	ok, err := s.creds.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("password comparison failed")
		return nil, domain.Wrap(op, err)
	}
	if !ok {
		return nil, domain.Wrap(op, domain.Authentication(domain.MsgInvalidCredentials))
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, domain.Wrap(op, err)
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Me returns the caller's profile, or nil when it no longer exists.
func (s *AccountService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.Wrap("Failed to fetch user", err)
	}
	return user, nil
}

// UpdateUser applies a partial update to the caller's own profile. A
// non-blank password is rehashed before it reaches storage.
func (s *AccountService) UpdateUser(ctx context.Context, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	const op = "Failed to update user"

	var patch domain.UserPatch
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Wrap(op, domain.Validationf("Name cannot be empty"))
		}
		patch.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.Wrap(op, domain.Validationf("Email cannot be empty"))
		}
		existing, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != userID:
			return nil, domain.Wrap(op, domain.Conflict(domain.MsgUserExists))
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, domain.Wrap(op, err)
		}
		patch.Email = &email
	}
	if in.Password != nil && s.creds.IsModified(*in.Password) {
		hash, err := s.creds.Hash(*in.Password)
		if err != nil {
			return nil, domain.Wrap(op, err)
		}
		patch.PasswordHash = &hash
	}
	if in.AcceptPrivacy != nil {
		v := *in.AcceptPrivacy
		patch.AcceptPrivacy = &v
	}

	if patch.Empty() {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, domain.Wrap(op, notFoundUser(err))
		}
		return user, nil
	}

	patch.UpdatedAt = time.Now().UTC()
	user, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		return nil, domain.Wrap(op, notFoundUser(err))
	}

	s.log.Info().
		Str("user_id", userID).
		Bool("password_changed", patch.PasswordHash != nil).
		Msg("user updated")
	return user, nil
}

// DeleteUser removes the caller's transactions and then the account. The
// two steps are not atomic: if the second fails the transactions are
// already gone and the account remains.
func (s *AccountService) DeleteUser(ctx context.Context, userID string) error {
	const op = "Failed to delete user"

	n, err := s.txs.DeleteByOwner(ctx, userID)
	if err != nil {
		return domain.Wrap(op, err)
	}
	s.log.Info().Str("user_id", userID).Int64("transactions", n).Msg("owned transactions deleted")

	if err := s.users.Delete(ctx, userID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error().Err(err).Str("user_id", userID).Msg("transactions deleted but user removal failed")
		}
		return domain.Wrap(op, notFoundUser(err))
	}

	if s.revoked != nil {
		if err := s.revoked.Revoke(ctx, userID, s.revokeFor); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke tokens of deleted user")
		}
	}

	s.log.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

// ValidatePassword reports whether password matches the caller's stored hash.
func (s *AccountService) ValidatePassword(ctx context.Context, userID, password string) (bool, error) {
	const op = "Failed to validate password"

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, domain.Wrap(op, notFoundUser(err))
	}

	ok, err := s.creds.Verify(password, user.PasswordHash)
	if err != nil {
		return false, domain.Wrap(op, err)
	}
	return ok, nil
}

// notFoundUser replaces a repository not-found error with the public
// "User not found" message; other errors pass through.
func notFoundUser(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundf(domain.MsgUserNotFound)
	}
	return err
}
