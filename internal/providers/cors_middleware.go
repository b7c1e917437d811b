package providers

import (
	"net/http"

	"github.com/rs/cors"
)

// CorsMiddleware answers preflight requests and sets the allow-origin header
// for origins listed in the config. "*" allows any origin, an empty list
// disables CORS.
func CorsMiddleware(allowOrigins []string, next http.Handler) http.Handler {
	if len(allowOrigins) == 0 {
		return next
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(next)
}
