package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	stdlog "log"

	"property-marketplace/internal/config"
	"property-marketplace/internal/domain/ports/adapter"
	pg "property-marketplace/internal/infra/db/postgres"
	"property-marketplace/internal/infra/logging"
	"property-marketplace/internal/infra/metrics"
	"property-marketplace/internal/infra/notify"
	pay "property-marketplace/internal/infra/payment"
	red "property-marketplace/internal/infra/redis"
	"property-marketplace/internal/infra/sched"
	"property-marketplace/internal/infra/web"
	"property-marketplace/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	log := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		log.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	if cfg.Database.MigrationsPath != "" {
		if err := pg.RunMigrations(cfg.Database.MigrationsPath, cfg.Database.URL); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	locker := red.NewLocker(redisClient)
	pendingStore := red.NewPendingStore(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	paymentRepo := pg.NewPaymentRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	propertyRepo := pg.NewPropertyRepo(pool)
	reviewRepo := pg.NewReviewRepo(pool)
	searchRepo := pg.NewSavedSearchRepo(pool)
	approvalRepo := pg.NewApprovalRepo(pool)
	referralRepo := pg.NewReferralRepo(pool)
	settingsRepo := pg.NewSettingsRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Payment provider ----
	env := pay.Environment(cfg.Payment.Lenco.Env)
	loader := pay.NewScriptLoader(pay.NewHTTPScriptRuntime(cfg.Payment.CheckoutTimeout))
	gateway := pay.NewLencoGateway(pay.NewHeadlessWidget(), loader, env, log)
	verifier := pay.NewLencoVerifier(cfg.Payment.Lenco.SecretKey, env)

	var notifier adapter.ReceiptNotifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Timeout, log)
	}

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo)
	subUC := usecase.NewSubscriptionUseCase(subRepo)
	propertyUC := usecase.NewPropertyUseCase(propertyRepo, userRepo, subUC)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, propertyRepo)
	searchUC := usecase.NewSavedSearchUseCase(searchRepo)
	approvalUC := usecase.NewApprovalUseCase(approvalRepo, userRepo, tm, log)
	statsUC := usecase.NewStatsUseCase(userRepo, subRepo, paymentRepo)
	referralUC := usecase.NewReferralUseCase(referralRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)

	policy := usecase.PaymentPolicy{
		PublicKey:       cfg.Payment.Lenco.PublicKey,
		Currency:        cfg.Payment.Currency,
		AmountEpsilon:   cfg.Payment.AmountEpsilon,
		CheckoutTimeout: cfg.Payment.CheckoutTimeout,
		VerifyTimeout:   cfg.Payment.VerifyTimeout,
		PendingTTL:      cfg.Payment.PendingTTL,
		LockTTL:         cfg.Redis.LockTTL,
	}
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, subRepo, userRepo, pendingStore, gateway, verifier, notifier, locker, tm, policy, log)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Auth)
	srv := web.NewServer(userUC, propertyUC, reviewUC, searchUC, approvalUC, subUC, paymentUC, statsUC, referralUC, settingsUC, auth, cfg.Auth.APIKey, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Payment reconciler ----
	reconciler := sched.NewPaymentReconciler(cfg.Reconciler.Interval, cfg.Reconciler.StaleAfter, cfg.Reconciler.BatchSize, pendingStore, paymentUC, log)
	go func() { _ = reconciler.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}
