package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorsMiddleware_NoOriginsPassesThrough(t *testing.T) {
	h := CorsMiddleware(nil, dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/backups", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsMiddleware_AllowedOrigin(t *testing.T) {
	h := CorsMiddleware([]string{"http://localhost:8080"}, dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/backups", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:8080", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "ok", rr.Body.String())
}

func TestCorsMiddleware_UnknownOrigin(t *testing.T) {
	h := CorsMiddleware([]string{"http://localhost:8080"}, dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/backups", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsMiddleware_Preflight(t *testing.T) {
	h := CorsMiddleware([]string{"*"}, dummyHandler())

	req := httptest.NewRequest(http.MethodOptions, "/guest/generate-link", nil)
	req.Header.Set("Origin", "http://anything")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Body.String())
}

func TestCorsMiddleware_AllowListVariesOnOrigin(t *testing.T) {
	h := CorsMiddleware([]string{"http://localhost:8080"}, dummyHandler())

	req := httptest.NewRequest(http.MethodOptions, "/backup", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:8080", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rr.Header().Get("Vary"), "Origin")
}

func TestCorsMiddleware_PreflightUnknownOrigin(t *testing.T) {
	h := CorsMiddleware([]string{"http://localhost:8080"}, dummyHandler())

	req := httptest.NewRequest(http.MethodOptions, "/backup", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Body.String())
}
