package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"property-marketplace/internal/domain/model"
)

func TestAuthManager(t *testing.T) {
	d := newTestDeps()

	t.Run("should stamp the configured identity into the session", func(t *testing.T) {
		// --- Arrange ---
		rec := httptest.NewRecorder()

		// --- Act ---
		token, err := d.auth.Mint(rec)

		// --- Assert ---
		if err != nil {
			t.Fatalf("mint: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		claims, err := d.auth.ParseFromRequest(req)
		if err != nil {
			t.Fatalf("parse minted session: %v", err)
		}
		if claims.Email != testAdminEmail || claims.Subject != testAdminEmail {
			t.Errorf("expected identity %s, got email=%s subject=%s", testAdminEmail, claims.Email, claims.Subject)
		}
		if claims.Role != string(model.RoleAdmin) {
			t.Errorf("expected admin role, got %s", claims.Role)
		}
	})

	t.Run("should round-trip the session through the cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if _, err := d.auth.Mint(rec); err != nil {
			t.Fatalf("mint: %v", err)
		}

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != sessionCookieName {
			t.Fatalf("expected one session cookie, got %v", cookies)
		}
		if !cookies[0].HttpOnly {
			t.Error("expected an HttpOnly cookie")
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		claims, err := d.auth.ParseFromRequest(req)
		if err != nil {
			t.Fatalf("parse cookie session: %v", err)
		}
		if claims.Email != testAdminEmail {
			t.Errorf("expected identity %s, got %s", testAdminEmail, claims.Email)
		}
	})

	t.Run("should reject a tampered token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		token, err := d.auth.Mint(rec)
		if err != nil {
			t.Fatalf("mint: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		if _, err := d.auth.ParseFromRequest(req); err == nil {
			t.Error("expected a tampered token to be rejected")
		}
	})

	t.Run("should expire the cookie on clear", func(t *testing.T) {
		rec := httptest.NewRecorder()
		d.auth.Clear(rec)

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].MaxAge != -1 {
			t.Fatalf("expected an expired session cookie, got %v", cookies)
		}
	})
}
