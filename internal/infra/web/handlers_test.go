package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

func doRequest(t *testing.T, d *testDeps, method, path, body string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	d.srv.Router().ServeHTTP(rec, req)
	return rec
}

func withAPIKey(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
}

func TestAPIKeyMiddleware(t *testing.T) {
	d := newTestDeps()
	d.users.GetFunc = func(ctx context.Context, id string) (*model.User, error) {
		return &model.User{ID: id}, nil
	}

	t.Run("should reject a request without a token", func(t *testing.T) {
		rec := doRequest(t, d, http.MethodGet, "/api/v1/users/u1", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("should reject a wrong token", func(t *testing.T) {
		rec := doRequest(t, d, http.MethodGet, "/api/v1/users/u1", "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer wrong")
		})
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("should pass a valid token through", func(t *testing.T) {
		rec := doRequest(t, d, http.MethodGet, "/api/v1/users/u1", "", withAPIKey)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("should return the payment result on success", func(t *testing.T) {
		d := newTestDeps()
		var gotReq *model.PaymentRequest
		d.payments.PayFunc = func(ctx context.Context, req *model.PaymentRequest) (model.PaymentResult, error) {
			gotReq = req
			return model.PaymentResult{Status: model.ResultSucceeded, PaymentID: "pay-42", Reference: "ref-1"}, nil
		}

		body := `{"user_id":"u1","amount":120,"currency":"ZMW","plan":"monthly","role":"landlord","method":"card","metadata":{"email":"a@b.c"}}`
		rec := doRequest(t, d, http.MethodPost, "/api/v1/payments/checkout", body, withAPIKey)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var res model.PaymentResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if res.Status != model.ResultSucceeded || res.PaymentID != "pay-42" || res.Reference != "ref-1" {
			t.Errorf("unexpected result %+v", res)
		}
		if gotReq.Plan != model.PlanMonthly || gotReq.Role != model.RoleLandlord || gotReq.Amount != 120 {
			t.Errorf("unexpected request %+v", gotReq)
		}
	})

	t.Run("should answer 502 when the charge settled but recording failed", func(t *testing.T) {
		d := newTestDeps()
		d.payments.PayFunc = func(ctx context.Context, req *model.PaymentRequest) (model.PaymentResult, error) {
			return model.PaymentResult{Status: model.ResultFailed, Reference: "ref-1"}, domain.ErrRecordingFailed
		}

		rec := doRequest(t, d, http.MethodPost, "/api/v1/payments/checkout", `{"user_id":"u1","amount":1}`, withAPIKey)
		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
		var res model.PaymentResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if res.Reference != "ref-1" {
			t.Errorf("expected the reference in the body, got %+v", res)
		}
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		d := newTestDeps()
		rec := doRequest(t, d, http.MethodPost, "/api/v1/payments/checkout", `{not json`, withAPIKey)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPropertyHandlers(t *testing.T) {
	t.Run("should create a property", func(t *testing.T) {
		d := newTestDeps()
		d.properties.CreateFunc = func(ctx context.Context, p *model.Property) (*model.Property, error) {
			p.ID = "prop-1"
			return p, nil
		}

		body := `{"owner_user_id":"u1","title":"2 bed flat","price":3500,"listing_type":"rent","location":"Lusaka"}`
		rec := doRequest(t, d, http.MethodPost, "/api/v1/properties", body, withAPIKey)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("should map a missing property to 404", func(t *testing.T) {
		d := newTestDeps()
		d.properties.GetFunc = func(ctx context.Context, id string) (*model.Property, error) {
			return nil, domain.ErrNotFound
		}

		rec := doRequest(t, d, http.MethodGet, "/api/v1/properties/nope", "", withAPIKey)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("should pass query filters through to the use case", func(t *testing.T) {
		d := newTestDeps()
		var got repository.PropertyFilter
		d.properties.ListFunc = func(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error) {
			got = f
			return nil, nil
		}

		rec := doRequest(t, d, http.MethodGet, "/api/v1/properties?location=Lusaka&listing_type=rent", "", withAPIKey)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if got.Location != "Lusaka" || got.ListingType != model.ListingType("rent") {
			t.Errorf("unexpected filter %+v", got)
		}
	})
}

func TestAdminSession(t *testing.T) {
	d := newTestDeps()
	d.stats.TotalsFunc = func(ctx context.Context) (int, map[string]int, error) {
		return 3, map[string]int{"monthly": 2}, nil
	}
	d.stats.RevenueFunc = func(ctx context.Context) (float64, float64, float64, error) {
		return 100, 400, 4800, nil
	}

	t.Run("should reject stats without a session", func(t *testing.T) {
		rec := doRequest(t, d, http.MethodGet, "/admin/v1/stats", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("should mint a session for the right key and serve stats", func(t *testing.T) {
		rec := doRequest(t, d, http.MethodPost, "/admin/v1/login", `{"api_key":"`+testAPIKey+`"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("login: expected 200, got %d", rec.Code)
		}
		var login struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil || login.Token == "" {
			t.Fatalf("expected a session token, got %s", rec.Body.String())
		}

		rec = doRequest(t, d, http.MethodGet, "/admin/v1/stats", "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+login.Token)
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("stats: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var stats struct {
			TotalUsers int `json:"total_users"`
			Revenue    struct {
				Year float64 `json:"year"`
			} `json:"revenue"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
			t.Fatalf("decode stats: %v", err)
		}
		if stats.TotalUsers != 3 || stats.Revenue.Year != 4800 {
			t.Errorf("unexpected stats %+v", stats)
		}
	})

	t.Run("should refuse to mint for a wrong key", func(t *testing.T) {
		rec := doRequest(t, d, http.MethodPost, "/admin/v1/login", `{"api_key":"nope"}`, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})
}

func TestReferralHandlers(t *testing.T) {
	t.Run("should record a referral", func(t *testing.T) {
		d := newTestDeps()
		d.referrals.RecordFunc = func(ctx context.Context, code, referredEmail string) (*model.Referral, error) {
			return &model.Referral{ID: "ref-row-1", Code: code, ReferredEmail: referredEmail}, nil
		}

		body := `{"code":"AGENT7","referred_email":"new@example.com"}`
		rec := doRequest(t, d, http.MethodPost, "/api/v1/referrals", body, withAPIKey)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("should reject a referral without a code", func(t *testing.T) {
		d := newTestDeps()
		d.referrals.RecordFunc = func(ctx context.Context, code, referredEmail string) (*model.Referral, error) {
			return nil, domain.ErrInvalidArgument
		}

		rec := doRequest(t, d, http.MethodPost, "/api/v1/referrals", `{"referred_email":"new@example.com"}`, withAPIKey)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSettingsHandlers(t *testing.T) {
	login := func(t *testing.T, d *testDeps) string {
		t.Helper()
		rec := doRequest(t, d, http.MethodPost, "/admin/v1/login", `{"api_key":"`+testAPIKey+`"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("login: expected 200, got %d", rec.Code)
		}
		var res struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode login: %v", err)
		}
		return res.Token
	}

	t.Run("should serve the settings document behind the session", func(t *testing.T) {
		d := newTestDeps()
		d.settings.GetFunc = func(ctx context.Context) (model.PlatformSettings, error) {
			s := model.DefaultPlatformSettings()
			s.TrialDays = 30
			return s, nil
		}
		token := login(t, d)

		rec := doRequest(t, d, http.MethodGet, "/admin/v1/settings", "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var got model.PlatformSettings
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode settings: %v", err)
		}
		if got.TrialDays != 30 || !got.AllowRegistrations {
			t.Errorf("unexpected settings %+v", got)
		}
	})

	t.Run("should keep defaults for fields the update omits", func(t *testing.T) {
		d := newTestDeps()
		var saved model.PlatformSettings
		d.settings.UpdateFunc = func(ctx context.Context, s model.PlatformSettings) error {
			saved = s
			return nil
		}
		token := login(t, d)

		rec := doRequest(t, d, http.MethodPut, "/admin/v1/settings", `{"commission":7.5}`, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if saved.Commission != 7.5 {
			t.Errorf("expected commission 7.5, got %v", saved.Commission)
		}
		if saved.TrialDays != 14 || !saved.AllowRegistrations {
			t.Errorf("expected omitted fields to keep defaults, got %+v", saved)
		}
	})

	t.Run("should reject invalid settings values", func(t *testing.T) {
		d := newTestDeps()
		d.settings.UpdateFunc = func(ctx context.Context, s model.PlatformSettings) error {
			return domain.ErrInvalidArgument
		}
		token := login(t, d)

		rec := doRequest(t, d, http.MethodPut, "/admin/v1/settings", `{"commission":250}`, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("should hide settings from unauthenticated callers", func(t *testing.T) {
		d := newTestDeps()
		rec := doRequest(t, d, http.MethodGet, "/admin/v1/settings", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}

func TestHealthz(t *testing.T) {
	d := newTestDeps()
	rec := doRequest(t, d, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
