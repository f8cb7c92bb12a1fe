package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/adapter"
)

// WidgetCallbacks mirror the widget's three terminal callbacks. The widget
// invokes exactly one of them per session.
type WidgetCallbacks struct {
	OnSuccess             func(reference string)
	OnClose               func()
	OnConfirmationPending func(reference string)
}

// CheckoutWidget is the hosted interactive widget surface. GetPaid presents
// the form and later fires one terminal callback; it returns an error only
// when the widget cannot start at all.
type CheckoutWidget interface {
	GetPaid(ctx context.Context, opts adapter.CheckoutOptions, cb WidgetCallbacks) error
}

// Compile-time check
var _ adapter.CheckoutGateway = (*LencoGateway)(nil)

// LencoGateway adapts the callback-based hosted widget into a single
// blocking call resolving to a three-way CheckoutOutcome. Cancellation by
// the payer is an outcome, never an error.
type LencoGateway struct {
	widget CheckoutWidget
	loader *ScriptLoader
	env    Environment
	log    *zerolog.Logger
}

func NewLencoGateway(widget CheckoutWidget, loader *ScriptLoader, env Environment, logger *zerolog.Logger) *LencoGateway {
	return &LencoGateway{widget: widget, loader: loader, env: env, log: logger}
}

func (g *LencoGateway) Name() string { return "lenco" }

func (g *LencoGateway) OpenCheckout(ctx context.Context, opts adapter.CheckoutOptions) (model.CheckoutOutcome, error) {
	if err := g.loader.Ensure(ctx, g.env); err != nil {
		return model.CheckoutOutcome{}, err
	}

	var (
		once      sync.Once
		outcomeCh = make(chan model.CheckoutOutcome, 1)
		errCh     = make(chan error, 1)
	)
	resolve := func(o model.CheckoutOutcome) {
		once.Do(func() { outcomeCh <- o })
	}
	fail := func(err error) {
		once.Do(func() { errCh <- err })
	}

	cb := WidgetCallbacks{
		OnSuccess: func(reference string) {
			if reference == "" {
				// A completion claim with no reference cannot be
				// verified; treat it as a hard error.
				fail(domain.ErrMissingReference)
				return
			}
			resolve(model.CheckoutOutcome{Status: model.CheckoutSuccess, Reference: reference})
		},
		OnClose: func() {
			// No transaction occurred; carry the caller's reference.
			resolve(model.CheckoutOutcome{Status: model.CheckoutCancelled, Reference: opts.Reference})
		},
		OnConfirmationPending: func(reference string) {
			if reference == "" {
				reference = opts.Reference
			}
			resolve(model.CheckoutOutcome{Status: model.CheckoutPending, Reference: reference})
		},
	}

	if err := g.widget.GetPaid(ctx, opts, cb); err != nil {
		return model.CheckoutOutcome{}, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	select {
	case o := <-outcomeCh:
		g.log.Debug().Str("reference", o.Reference).Str("status", string(o.Status)).Msg("checkout resolved")
		return o, nil
	case err := <-errCh:
		return model.CheckoutOutcome{}, err
	case <-ctx.Done():
		return model.CheckoutOutcome{}, ctx.Err()
	}
}
