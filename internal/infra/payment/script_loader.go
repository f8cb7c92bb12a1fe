package payment

import (
	"context"
	"fmt"
	"sync"

	"property-marketplace/internal/domain"
)

// Environment selects the provider's sandbox or live assets.
type Environment string

const (
	EnvSandbox Environment = "sandbox"
	EnvLive    Environment = "live"
)

var scriptURLs = map[Environment]string{
	EnvSandbox: "https://pay.sandbox.lenco.co/js/v1/inline.js",
	EnvLive:    "https://pay.lenco.co/js/v1/inline.js",
}

// ScriptRuntime abstracts the host surface that loads and unloads the
// provider's inline checkout script (an embedded web view in production, a
// fake in tests).
type ScriptRuntime interface {
	Load(ctx context.Context, url string) error
	Unload(url string)
	// WidgetReady reports whether the loaded script exposed the widget.
	WidgetReady() bool
}

// ScriptLoader keeps at most one environment's checkout script resident.
// The current environment is owned state on the loader, constructed once per
// process and injected into the gateway; switching environments unloads the
// previous script before loading the new one.
type ScriptLoader struct {
	mu      sync.Mutex
	runtime ScriptRuntime
	current Environment
}

func NewScriptLoader(runtime ScriptRuntime) *ScriptLoader {
	return &ScriptLoader{runtime: runtime}
}

// Ensure makes env's script resident, failing fast when it cannot load or
// the widget never appears.
func (l *ScriptLoader) Ensure(ctx context.Context, env Environment) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == env && l.runtime.WidgetReady() {
		return nil
	}

	if l.current != "" && l.current != env {
		l.runtime.Unload(scriptURLs[l.current])
		l.current = ""
	}

	url, ok := scriptURLs[env]
	if !ok {
		return fmt.Errorf("%w: unknown environment %q", domain.ErrGatewayUnavailable, env)
	}
	if err := l.runtime.Load(ctx, url); err != nil {
		return fmt.Errorf("%w: load script: %v", domain.ErrGatewayUnavailable, err)
	}
	if !l.runtime.WidgetReady() {
		return fmt.Errorf("%w: script loaded but widget missing", domain.ErrGatewayUnavailable)
	}
	l.current = env
	return nil
}

// Current returns the resident environment, empty when none is loaded.
func (l *ScriptLoader) Current() Environment {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
