package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "bureau/pkg/domain"
	"bureau/pkg/requestcontext"
	"bureau/pkg/secrets"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func protected(t *testing.T, cfg TokenConfig) (http.Handler, *id.PrincipalID) {
	t.Helper()
	var seen id.PrincipalID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.Principal(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	return RequireAdminToken(cfg, "registry-admin", discardLogger())(next), &seen
}

func TestRequireAdminToken_ValidPlainToken(t *testing.T) {
	h, seen := protected(t, TokenConfig{Plain: "sekret"})

	r := httptest.NewRequest(http.MethodPost, "/admin/lenders/l1/grant", nil)
	r.Header.Set("X-Admin-Token", "sekret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, id.PrincipalID("registry-admin"), *seen)
}

func TestRequireAdminToken_MissingToken(t *testing.T) {
	h, _ := protected(t, TokenConfig{Plain: "sekret"})

	r := httptest.NewRequest(http.MethodPost, "/admin/lenders/l1/grant", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized","error_description":"admin token required"}`, w.Body.String())
}

func TestRequireAdminToken_WrongToken(t *testing.T) {
	h, _ := protected(t, TokenConfig{Plain: "sekret"})

	r := httptest.NewRequest(http.MethodPost, "/admin/lenders/l1/grant", nil)
	r.Header.Set("X-Admin-Token", "nope")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminToken_BcryptHash(t *testing.T) {
	hash, err := secrets.Hash("sekret")
	require.NoError(t, err)
	h, _ := protected(t, TokenConfig{BcryptHash: hash})

	r := httptest.NewRequest(http.MethodPost, "/admin/lenders/l1/grant", nil)
	r.Header.Set("X-Admin-Token", "sekret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/admin/lenders/l1/grant", nil)
	r.Header.Set("X-Admin-Token", "wrong")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminToken_NoTokenConfigured(t *testing.T) {
	// An unset token must never mean "open admin surface".
	h, _ := protected(t, TokenConfig{})

	r := httptest.NewRequest(http.MethodPost, "/admin/lenders/l1/grant", nil)
	r.Header.Set("X-Admin-Token", "")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
