package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/infra/metrics"
	"property-marketplace/internal/usecase"
)

type Server struct {
	userUC     usecase.UserUseCase
	propertyUC usecase.PropertyUseCase
	reviewUC   usecase.ReviewUseCase
	searchUC   usecase.SavedSearchUseCase
	approvalUC usecase.ApprovalUseCase
	subUC      usecase.SubscriptionUseCase
	paymentUC  usecase.PaymentUseCase
	statsUC    usecase.StatsUseCase
	referralUC usecase.ReferralUseCase
	settingsUC usecase.SettingsUseCase
	auth       *AuthManager
	apiKey     string
	log        *zerolog.Logger
}

func NewServer(
	userUC usecase.UserUseCase,
	propertyUC usecase.PropertyUseCase,
	reviewUC usecase.ReviewUseCase,
	searchUC usecase.SavedSearchUseCase,
	approvalUC usecase.ApprovalUseCase,
	subUC usecase.SubscriptionUseCase,
	paymentUC usecase.PaymentUseCase,
	statsUC usecase.StatsUseCase,
	referralUC usecase.ReferralUseCase,
	settingsUC usecase.SettingsUseCase,
	auth *AuthManager,
	apiKey string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		userUC:     userUC,
		propertyUC: propertyUC,
		reviewUC:   reviewUC,
		searchUC:   searchUC,
		approvalUC: approvalUC,
		subUC:      subUC,
		paymentUC:  paymentUC,
		statsUC:    statsUC,
		referralUC: referralUC,
		settingsUC: settingsUC,
		auth:       auth,
		apiKey:     apiKey,
		log:        logger,
	}
}

// Router builds the full route tree: public health/metrics, the service
// API behind bearer-key auth, and the admin surface behind session auth.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(s.apiKeyMiddleware)

		api.Post("/users", s.userCreateHandler())
		api.Get("/users/{id}", s.userGetHandler())

		api.Get("/properties", s.propertiesListHandler())
		api.Post("/properties", s.propertyCreateHandler())
		api.Get("/properties/{id}", s.propertyGetHandler())
		api.Put("/properties/{id}", s.propertyUpdateHandler())
		api.Delete("/properties/{id}", s.propertyDeleteHandler())

		api.Get("/properties/{id}/reviews", s.reviewsListHandler())
		api.Post("/properties/{id}/reviews", s.reviewCreateHandler())

		api.Get("/users/{id}/searches", s.searchesListHandler())
		api.Post("/users/{id}/searches", s.searchCreateHandler())
		api.Delete("/users/{id}/searches/{searchID}", s.searchDeleteHandler())

		api.Post("/approvals", s.approvalSubmitHandler())
		api.Post("/referrals", s.referralCreateHandler())

		api.Get("/users/{id}/subscription", s.subscriptionGetHandler())
		api.Post("/payments/checkout", s.checkoutHandler())
		api.Get("/payments/{id}", s.paymentGetHandler())
		api.Get("/users/{id}/payments", s.paymentsListHandler())
	})

	r.Route("/admin/v1", func(admin chi.Router) {
		admin.Post("/login", s.adminLoginHandler())

		admin.Group(func(g chi.Router) {
			g.Use(s.adminSessionMiddleware)

			g.Post("/logout", s.adminLogoutHandler())
			g.Get("/approvals", s.approvalsPendingHandler())
			g.Post("/approvals/{id}/approve", s.approvalApproveHandler())
			g.Post("/approvals/{id}/reject", s.approvalRejectHandler())
			g.Get("/users", s.usersListHandler())
			g.Get("/subscriptions", s.subscriptionsListHandler())
			g.Get("/stats", s.statsHandler())
			g.Get("/referrals", s.referralsListHandler())
			g.Get("/settings", s.settingsGetHandler())
			g.Put("/settings", s.settingsUpdateHandler())
		})
	})

	return r
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.ObserveHTTP(route, http.StatusText(ww.Status()), time.Since(start))
	})
}

// apiKeyMiddleware provides simple Bearer token authentication for the
// service API.
func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}

		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// adminSessionMiddleware authenticates admin requests via the session
// cookie or a bearer JWT.
func (s *Server) adminSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != string(model.RoleAdmin) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
