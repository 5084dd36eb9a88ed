package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/corretora/backoffice/internal/auth"
)

type contextKey string

const (
	ContextKeySubject contextKey = "subject"
	ContextKeyRoles   contextKey = "roles"

	contextKeySubjectSink contextKey = "subject_sink"
)

// Auth valida JWT de acesso e injeta claims no contexto. O subject é a identidade
// usada para particionar o cache de consultas.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "AUTH", "token ausente")
				return
			}

			claims, err := jwtManager.ParseAndValidate(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "token inválido")
				return
			}

			if strings.TrimSpace(claims.Subject) == "" {
				writeError(w, http.StatusUnauthorized, "AUTH", "subject inválido")
				return
			}
			if len(claims.Audience) == 0 || claims.Audience[0] != auth.AudienceBackoffice {
				writeError(w, http.StatusUnauthorized, "AUTH", "audience inválida")
				return
			}

			if sink, ok := r.Context().Value(contextKeySubjectSink).(*string); ok {
				*sink = claims.Subject
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyRoles, claims.Roles)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject recupera subject do contexto.
func GetSubject(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySubject).(string)
	return val
}

// GetRoles recupera roles do contexto.
func GetRoles(ctx context.Context) []string {
	val, _ := ctx.Value(ContextKeyRoles).([]string)
	return val
}

// withSubjectSink permite que middlewares externos ao Auth (log) conheçam o subject.
func withSubjectSink(ctx context.Context, dst *string) context.Context {
	return context.WithValue(ctx, contextKeySubjectSink, dst)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
