// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/repository"
	"github.com/unclebandit/mailflow-backend/internal/token"
)

type contextKey string

const actorKey contextKey = "actor"

// Actor is the authenticated identity handed to handlers: a stable ID for
// owner-stamping and an explicit role flag for list scoping.
type Actor struct {
	ID    int
	Email string
	Role  string
}

func (a Actor) IsManager() bool {
	return a.Role == model.RoleManager
}

// Auth validates session tokens and gates blocked/inactive accounts before
// any handler runs. Dispatch itself performs no authorization.
type Auth struct {
	Tokens   *token.Manager
	UserRepo repository.UserRepositoryInterface
}

// RequireUser rejects requests without a valid session for an active,
// unblocked account.
func (m *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
			return
		}

		claims, err := m.Tokens.Validate(strings.TrimPrefix(header, "Bearer "), token.PurposeSession)
		if err != nil {
			http.Error(w, "invalid or expired session", http.StatusUnauthorized)
			return
		}

		// Re-check the account flags so a block takes effect immediately,
		// not at token expiry.
		user, err := m.UserRepo.GetByID(claims.UserID)
		if err != nil {
			http.Error(w, "invalid session", http.StatusUnauthorized)
			return
		}
		if !user.IsActive || user.IsBlocked {
			http.Error(w, "account is inactive or blocked", http.StatusForbidden)
			return
		}

		actor := Actor{ID: user.ID, Email: user.Email, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// RequireManager must be chained after RequireUser.
func (m *Auth) RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.IsManager() {
			http.Error(w, "manager role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}
