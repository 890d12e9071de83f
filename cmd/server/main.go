package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fieldtrans/internal/cache"
	"fieldtrans/internal/config"
	"fieldtrans/internal/contenttype"
	"fieldtrans/internal/db"
	"fieldtrans/internal/handler"
	transport "fieldtrans/internal/http"
	"fieldtrans/internal/i18n"
	"fieldtrans/internal/locale"
	"fieldtrans/internal/logger"
	"fieldtrans/internal/repository"
	"fieldtrans/internal/scheduler"
	"fieldtrans/internal/service"
	"fieldtrans/internal/snowflake"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.NodeID); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := contenttype.NewRegistry(repository.NewContentTypeRepository(dbConn))
	store := cache.NewMemory()
	translationCache := service.NewTranslationCache(store, registry, cfg.CachePrefix, cfg.CacheTTL)
	translatedRepo := repository.NewTranslatedFieldRepository(dbConn, translationCache.Invalidate)
	productRepo := repository.NewProductRepository(dbConn)
	templateRepo := repository.NewDynamicTemplateRepository(dbConn)
	matcher := locale.NewMatcher(cfg.Languages, cfg.DefaultLanguage)

	translationService := service.NewTranslationService(translatedRepo, registry, translationCache, matcher)
	productService := service.NewProductService(productRepo, translationService)
	if _, err := registry.Register(ctx, productService.Definition()); err != nil {
		log.Fatalf("register products: %v", err)
	}

	translator := i18n.NewTranslator(cfg.DefaultLanguage)
	funcs := service.NewTemplateFuncs(translationService, registry, translator, transport.AdminPrefix+handler.EditorPath)
	templateService := service.NewDynamicTemplateService(templateRepo, funcs)

	router := transport.NewRouter(
		handler.NewTranslationHandler(translationService, translator),
		handler.NewProductHandler(productService),
		handler.NewTemplateHandler(templateService),
		handler.NewAdminHandler(productService, funcs),
		matcher,
		cfg.StaticDir,
		cfg.AdminRate,
	)

	if cfg.CacheSweep > 0 {
		sweeper := scheduler.New("cache", scheduler.CacheSweep(store.Sweep), cfg.CacheSweep)
		sweeper.Start()
		defer sweeper.Stop()
	}

	logger.Info("server starting", "module", "main", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "version", config.AppVersion, "languages", cfg.Languages)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down", "module", "main", "action", "stop", "resource", "http", "result", "ok")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "module", "main", "action", "stop", "resource", "http", "result", "failed", "error", err)
	}
}
