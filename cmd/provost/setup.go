package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/provostbot/internal/catalog"
	"github.com/sandevgo/provostbot/internal/config"
	"github.com/sandevgo/provostbot/internal/memory"
	"github.com/sandevgo/provostbot/internal/providers/oracle"
	"github.com/sandevgo/provostbot/internal/service/answer"
	"github.com/sandevgo/provostbot/internal/service/pipeline"
	"github.com/sandevgo/provostbot/internal/service/router"
	"github.com/sandevgo/provostbot/internal/storage/sqlite"
	"github.com/sandevgo/provostbot/internal/transport/httpapi"
	"github.com/sandevgo/provostbot/internal/transport/telegram"
	"github.com/sandevgo/provostbot/pkg/log"
	"github.com/sandevgo/provostbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	oracleCfg := config.NewOracleConfig(ctx)

	// 2. Catalog
	// A missing or invalid index is fatal: the router has nothing to route to.
	store, err := catalog.Load(appCfg.GetCatalogIndexPath())
	if err != nil {
		logger.Fatal().Err(err).Str("path", appCfg.GetCatalogIndexPath()).
			Msg("failed to load catalog index, run 'provost gen' first")
	}
	logger.Info().Int("documents", store.Len()).Msg("catalog loaded")

	// 3. Storage (exchange audit log)
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))
	exchanges := sqlite.NewExchangesRepo(db)

	// 4. Oracle
	gemini, err := oracle.NewGemini(ctx, oracleCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize oracle")
	}

	// 5. Pipeline stages
	rtr := router.New(gemini, appCfg.RouterTokenBudget, appCfg.RouterMaxCandidates)
	ans := answer.New(gemini, answer.ContactRecord{
		Department: appCfg.ContactDepartment,
		Phone:      appCfg.ContactPhone,
		Fax:        appCfg.ContactFax,
		Email:      appCfg.ContactEmail,
	})
	window := memory.NewWindow(appCfg.HistorySize)

	pipe := pipeline.New(store, rtr, ans, window, exchanges, appCfg.NotFoundMarkers)

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, pipe)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initTransports(ctx context.Context, cfg *config.AppConfig, pipe *pipeline.Pipeline) ([]srv.Service, error) {
	var services []srv.Service

	// HTTP API
	server := httpapi.NewServer(cfg.HTTPAddr)
	server.SetPipeline(pipe)
	services = append(services, server)

	// Telegram Bot
	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, pipe)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
