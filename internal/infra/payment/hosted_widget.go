package payment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"property-marketplace/internal/domain/ports/adapter"
)

// HTTPScriptRuntime loads the provider's inline checkout script over HTTP.
// It verifies that the script is reachable and exposes the widget entry
// point before reporting ready.
type HTTPScriptRuntime struct {
	client *http.Client

	mu     sync.Mutex
	loaded map[string]bool
}

func NewHTTPScriptRuntime(timeout time.Duration) *HTTPScriptRuntime {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPScriptRuntime{
		client: &http.Client{Timeout: timeout},
		loaded: make(map[string]bool),
	}
}

func (r *HTTPScriptRuntime) Load(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch script: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if !strings.Contains(string(body), "getPaid") {
		return fmt.Errorf("script at %s does not expose the widget", url)
	}

	r.mu.Lock()
	r.loaded[url] = true
	r.mu.Unlock()
	return nil
}

func (r *HTTPScriptRuntime) Unload(url string) {
	r.mu.Lock()
	delete(r.loaded, url)
	r.mu.Unlock()
}

func (r *HTTPScriptRuntime) WidgetReady() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loaded) > 0
}

// HeadlessWidget stands in for the interactive widget when the service runs
// without a payer-facing surface. Every session resolves to confirmation
// pending under the caller's reference; the payer completes the charge on
// the provider's hosted page and the verification sweep settles it.
type HeadlessWidget struct{}

var _ CheckoutWidget = HeadlessWidget{}

func NewHeadlessWidget() HeadlessWidget { return HeadlessWidget{} }

func (HeadlessWidget) GetPaid(_ context.Context, opts adapter.CheckoutOptions, cb WidgetCallbacks) error {
	cb.OnConfirmationPending(opts.Reference)
	return nil
}
