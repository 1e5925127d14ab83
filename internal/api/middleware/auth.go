package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avykhr/CareerDay-BookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	adminKey  contextKey = "isAdmin"

	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	roleAdmin = "admin"
)

// Auth проверяет наличие заголовка X-User-ID и кладет ID и роль в контекст.
// Аутентификацию выполняет API gateway, сервис доверяет его заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, adminKey, r.Header.Get(headerRole) == roleAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly пропускает только запросы с ролью администратора.
// Вешается поверх Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, "требуются права администратора")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsAdmin возвращает true, если запрос пришел от администратора
func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(adminKey).(bool)
	return ok && isAdmin
}
