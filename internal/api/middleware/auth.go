package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RepairBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgInvalidRole   = "некорректная роль пользователя"
)

type contextKey string

const callerKey contextKey = "caller"

// Auth достает идентичность пользователя из заголовков шлюза.
// Без корректного X-User-ID запрос отклоняется с 401, с неизвестной ролью с 403.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		role, ok := domain.ParseRole(r.Header.Get(HeaderRole))
		if !ok {
			handlers.RespondForbidden(w, msgInvalidRole)
			return
		}

		ctx := WithCaller(r.Context(), domain.Caller{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithCaller кладет идентичность в контекст
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCaller идентичность пользователя, установленная Auth
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}
