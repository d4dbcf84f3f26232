package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CaptureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

// HeaderUserID заголовок с ID аутентифицированного клиента (проставляет gateway)
const HeaderUserID = "X-User-ID"

const msgMissingUserID = "Usuário não autenticado"

type contextKey string

const userIDKey contextKey = "userID"

// Auth требует непустой X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" || len(userID) > domain.MaxOwnerIDLength {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладет ID клиента в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID возвращает ID клиента из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
