package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/adapter"
)

var apiBaseURLs = map[Environment]string{
	EnvSandbox: "https://sandbox.lenco.co/access/v2",
	EnvLive:    "https://api.lenco.co/access/v2",
}

// Compile-time check
var _ adapter.PaymentVerifier = (*LencoVerifier)(nil)

// LencoVerifier asks the provider's collections-status endpoint whether
// a reference is genuinely settled.
// The widget's own completion claim is never trusted without this.
type LencoVerifier struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewLencoVerifier(secretKey string, env Environment) *LencoVerifier {
	base, ok := apiBaseURLs[env]
	if !ok {
		base = apiBaseURLs[EnvSandbox]
	}
	return &LencoVerifier{
		secretKey: secretKey,
		baseURL:   base,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type lencoStatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string          `json:"status"`
		Amount    json.RawMessage `json:"amount"`
		Currency  string          `json:"currency"`
		Reference string          `json:"reference"`
	} `json:"data"`
}

// Verify folds the provider vocabulary into the four-state outcome. Non-2xx
// responses and transport failures map to error; unrecognized statuses map
// to failed. Nothing is ever silently treated as success. The raw payload is
// retained on every path for audit.
func (v *LencoVerifier) Verify(ctx context.Context, reference string) (model.VerificationOutcome, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return model.VerificationOutcome{Status: model.VerifyError}, domain.ErrInvalidArgument
	}

	endpoint := fmt.Sprintf("%s/collections/status/%s", v.baseURL, url.PathEscape(reference))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.VerificationOutcome{Status: model.VerifyError}, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return model.VerificationOutcome{Status: model.VerifyError}, fmt.Errorf("verify request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.VerificationOutcome{Status: model.VerifyError}, fmt.Errorf("read verify response: %w", err)
	}
	raw := asJSON(body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.VerificationOutcome{Status: model.VerifyError, Raw: raw}, nil
	}

	var parsed lencoStatusResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.VerificationOutcome{Status: model.VerifyError, Raw: raw}, nil
	}

	out := model.VerificationOutcome{
		Amount:   toNumber(parsed.Data.Amount),
		Currency: parsed.Data.Currency,
		Raw:      raw,
	}
	switch strings.ToLower(parsed.Data.Status) {
	case "successful", "success":
		out.Status = model.VerifySuccess
	case "pending", "pay-offline", "otp-required":
		out.Status = model.VerifyPending
	default:
		out.Status = model.VerifyFailed
	}
	return out, nil
}

// asJSON guarantees the retained payload is valid JSON so it can be embedded
// into structured logs verbatim.
func asJSON(body []byte) []byte {
	if json.Valid(body) {
		return body
	}
	wrapped, err := json.Marshal(string(body))
	if err != nil {
		return []byte("null")
	}
	return wrapped
}

// toNumber accepts the amount either as a JSON number or as a quoted
// decimal string, both of which the API emits depending on channel.
func toNumber(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	s := strings.Trim(string(raw), `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
