package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/papermill/internal/config"
	"github.com/polkiloo/papermill/internal/server/http/handlers"
	"github.com/polkiloo/papermill/internal/usecase"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewBrokerFacade,
		func(f *BrokerFacade) handlers.BrokerFacade { return f },
		newHTTPServer,
	),
	fx.Invoke(registerBootstrap),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type adminEnsurer interface {
	EnsureAdmin(ctx context.Context, login, password string) (bool, error)
}

type ruleSeeder interface {
	SeedIfEmpty(ctx context.Context) (bool, error)
}

type bootstrapParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *slog.Logger
	Config    *config.Config
	Auth      *usecase.AuthUseCase
	Rules     *usecase.RuleUseCase
}

func registerBootstrap(p bootstrapParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return bootstrap(ctx, p.Config, p.Auth, p.Rules, p.Logger)
		},
	})
}

// bootstrap provisions the configured administrator and the default pricing catalog.
func bootstrap(ctx context.Context, cfg *config.Config, admins adminEnsurer, rules ruleSeeder, logger *slog.Logger) error {
	if cfg.AdminLogin != "" {
		created, err := admins.EnsureAdmin(ctx, cfg.AdminLogin, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
		if created {
			logger.Info("administrator account created", slog.String("login", cfg.AdminLogin))
		}
	}

	if cfg.SeedPricingRules {
		seeded, err := rules.SeedIfEmpty(ctx)
		if err != nil {
			return fmt.Errorf("seed pricing rules: %w", err)
		}
		if !seeded {
			logger.Debug("pricing rules already present, seeding skipped")
		}
	}
	return nil
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting papermill", slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("papermill stopped")
			return nil
		},
	})
}
