package middleware

import "net/http"

// CORS headers attached to every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Authorization, Content-Type, X-Requested-With"
	MaxAge       = "86400"
)

// CORSHandle answers preflight requests with 204 before routing and marks other responses as shareable.
func CORSHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", AllowOrigin)
		h.Set("Access-Control-Allow-Methods", AllowMethods)
		h.Set("Access-Control-Allow-Headers", AllowHeaders)
		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Max-Age", MaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
