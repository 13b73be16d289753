package graph

import (
	"github.com/bytebank/ledger-api/internal/core/domain"
)

// Values of extensions.code on error responses.
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Error is what resolvers hand to the executor. graphql-go copies
// Extensions into the response, so clients get a stable code next to the
// message.
type Error struct {
	message string
	code    string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Extensions() map[string]any {
	return map[string]any{"code": e.code}
}

func codeFor(kind domain.Kind) string {
	switch kind {
	case domain.KindValidation:
		return CodeBadUserInput
	case domain.KindAuthentication:
		return CodeUnauthenticated
	case domain.KindNotFound:
		return CodeNotFound
	case domain.KindConflict:
		return CodeConflict
	default:
		return CodeInternal
	}
}

func (r *Resolver) present(field string, err error) error {
	kind := domain.KindOf(err)
	if kind == domain.KindInternal {
		r.logger.Error().Err(err).Str("field", field).Msg("resolver failed")
	}
	return &Error{message: domain.PublicMessage(err), code: codeFor(kind)}
}
