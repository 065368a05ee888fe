package middleware

import "net/http"

// CORS headers attached to every proxy response
const (
	AllowOrigin  = "*"
	AllowHeaders = "Content-Type"
	AllowMethods = "GET, POST, OPTIONS"
)

// SetCORSHeaders sets the cross-origin headers on w
func SetCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", AllowOrigin)
	w.Header().Set("Access-Control-Allow-Headers", AllowHeaders)
	w.Header().Set("Access-Control-Allow-Methods", AllowMethods)
}

// CORS adds cross-origin headers and answers pre-flight requests
// before they reach next.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetCORSHeaders(w)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
