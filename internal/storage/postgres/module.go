package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/papermill/internal/config"
	"github.com/polkiloo/papermill/internal/domain/repository"
)

// Module wires PostgreSQL storage and exposes its repositories individually.
var Module = fx.Options(
	fx.Provide(
		newStorage,
		func(s *Storage) repository.Factory { return s },
	),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.RuleRepository { return f.Rules() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

// registerLifecycle verifies connectivity before the HTTP server starts and
// releases the pool on shutdown.
func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := storage.HealthCheck(ctx); err != nil {
				return fmt.Errorf("postgres unreachable: %w", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
