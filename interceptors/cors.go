package interceptors

import (
	"net/http"

	"github.com/companieshouse/chs.go/log"
)

// CORSInterceptor applies the origin allow-list to cross-origin requests
type CORSInterceptor struct {
	AllowedOrigins []string
}

// CORSIntercept checks the request origin against the allow-list, decorates
// allowed responses with the CORS headers and short-circuits preflight
// requests
func (interceptor *CORSInterceptor) CORSIntercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && interceptor.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Webhook-Signature")
			w.Header().Set("Vary", "Origin")
		} else if origin != "" {
			log.InfoR(r, "request from origin not on allow-list", log.Data{"origin": origin})
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (interceptor *CORSInterceptor) originAllowed(origin string) bool {
	if len(interceptor.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range interceptor.AllowedOrigins {
		if allowed == origin || allowed == "*" {
			return true
		}
	}
	return false
}
