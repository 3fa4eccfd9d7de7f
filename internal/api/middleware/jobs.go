package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CoachScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

const msgJobsUnauthorized = "требуется секрет планировщика или роль администратора"

// JobsAuth защищает служебные эндпоинты задач.
// Пропускает запрос с "Authorization: Bearer <secret>" или с ролью admin.
// Пустой секрет отключает проверку по секрету.
func JobsAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" && bearerMatches(r.Header.Get("Authorization"), secret) {
				next.ServeHTTP(w, r)
				return
			}

			if domain.Actor(r.Header.Get(HeaderUserRole)) == domain.ActorAdmin {
				next.ServeHTTP(w, r)
				return
			}

			handlers.RespondUnauthorized(w, msgJobsUnauthorized)
		})
	}
}

func bearerMatches(header, secret string) bool {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
