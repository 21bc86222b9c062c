package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DigitariaWebs/puneet-sub015/internal/app"
	"github.com/DigitariaWebs/puneet-sub015/internal/booking"
	"github.com/DigitariaWebs/puneet-sub015/internal/observability"
	"github.com/DigitariaWebs/puneet-sub015/internal/platform/cache"
	"github.com/DigitariaWebs/puneet-sub015/internal/platform/db"
	"github.com/DigitariaWebs/puneet-sub015/internal/rbac"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	store, cleanup, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open ledger store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	ledger := booking.Open(ctx, store, booking.DefaultSeed(time.Now()), logger)
	defer ledger.Close()

	fallback, err := cfg.FallbackRole()
	if err != nil {
		logger.Error("parse default role", slog.Any("error", err))
		os.Exit(1)
	}

	catalog := rbac.DefaultCatalog()
	engine := rbac.NewEngine(catalog)
	routes := rbac.NewAccessEvaluator(engine, cfg.RouteFailClosed)
	registerRouteRules(routes)
	guard := rbac.NewGuard(engine, routes)
	rbacMiddleware := rbac.Middleware{
		Roles:  rbac.NewRoleContext(fallback),
		Guard:  guard,
		Logger: logger,
	}

	metrics := observability.NewMetrics()
	bookingHandler := booking.NewHandler(ledger, logger, metrics)
	permissionsHandler := rbac.NewPermissionsHandler(logger, catalog)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		BookingHandler:     bookingHandler,
		PermissionsHandler: permissionsHandler,
		RBACMiddleware:     rbacMiddleware,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("console listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

// registerRouteRules declares which console routes are protected. Routes
// absent from this table stay public unless ROUTE_FAIL_CLOSED is set.
func registerRouteRules(routes *rbac.AccessEvaluator) {
	routes.Register("console.revenue", rbac.RouteRule{
		Required: []rbac.Permission{rbac.PermViewRevenue},
	})
	routes.Register("console.reports", rbac.RouteRule{
		Required: []rbac.Permission{rbac.PermViewRevenue, rbac.PermExportReports},
		Mode:     rbac.All,
	})
	routes.Register("console.refunds", rbac.RouteRule{
		Required: []rbac.Permission{rbac.PermProcessRefund},
	})
	routes.Register("console.staff", rbac.RouteRule{
		Required: []rbac.Permission{rbac.PermManageStaff},
	})
	routes.Register("console.requests", rbac.RouteRule{
		Required: []rbac.Permission{rbac.PermReviewBookings, rbac.PermViewBookings},
	})
}

// newStore selects the ledger persistence backend from configuration.
func newStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (booking.Store, func(), error) {
	switch cfg.LedgerStore {
	case "redis":
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
		return booking.NewRedisStore(client, cfg.LedgerRedisKey), cleanup, nil
	case "postgres":
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		store := booking.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		return booking.NewFileStore(cfg.LedgerStorePath), func() {}, nil
	}
}
