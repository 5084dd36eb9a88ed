package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CORS libera apenas as origens de ALLOW_ORIGINS: valor exato
// (https://painel.corretora.com.br) ou subdomínios quando a entrada começa com *.
// (*.corretora.com.br).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := newOriginMatcher(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowed.match(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type originMatcher struct {
	exact    map[string]struct{}
	suffixes []string // ".dominio", sempre em minúsculas
}

func newOriginMatcher(entries []string) originMatcher {
	m := originMatcher{exact: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		e := strings.TrimSpace(entry)
		switch {
		case e == "":
		case strings.HasPrefix(e, "*."):
			m.suffixes = append(m.suffixes, strings.ToLower(strings.TrimPrefix(e, "*")))
		default:
			m.exact[e] = struct{}{}
		}
	}
	return m
}

func (m originMatcher) match(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := m.exact[origin]; ok {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, suf := range m.suffixes {
		// exige subdomínio: a raiz do sufixo não é liberada
		if strings.HasSuffix(host, suf) && host != strings.TrimPrefix(suf, ".") {
			return true
		}
	}
	return false
}
