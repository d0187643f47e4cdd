package di

import (
	"github.com/polkiloo/papermill/internal/app"
	"github.com/polkiloo/papermill/internal/config"
	"github.com/polkiloo/papermill/internal/logger"
	"github.com/polkiloo/papermill/internal/pkg/auth"
	"github.com/polkiloo/papermill/internal/server/http/router"
	"github.com/polkiloo/papermill/internal/storage/postgres"
	"github.com/polkiloo/papermill/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
