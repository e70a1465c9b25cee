package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockbook/internal/activitylog"
	"github.com/mamadbah2/stockbook/internal/config"
	"github.com/mamadbah2/stockbook/internal/repository/jsonfile"
	"github.com/mamadbah2/stockbook/internal/repository/mongodb"
	"github.com/mamadbah2/stockbook/internal/repository/sheets"
	"github.com/mamadbah2/stockbook/internal/scheduler"
	"github.com/mamadbah2/stockbook/internal/server/handlers"
	"github.com/mamadbah2/stockbook/internal/server/router"
	"github.com/mamadbah2/stockbook/internal/service/ledger"
	reportingsvc "github.com/mamadbah2/stockbook/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/stockbook/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/stockbook/pkg/clients/whatsapp"
	"github.com/mamadbah2/stockbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store := jsonfile.New(cfg.Inventory.DataDir)
	if err := store.EnsureDir(); err != nil {
		baseLogger.Fatal("failed to create inventory directory", zap.Error(err))
	}

	journal := activitylog.New(cfg.Inventory.LogDir)
	if err := journal.EnsureDir(); err != nil {
		baseLogger.Fatal("failed to create activity log directory", zap.Error(err))
	}

	inventory, err := ledger.New(store, journal, logger.Named(baseLogger, "svc.ledger"))
	if err != nil {
		baseLogger.Fatal("failed to load inventory", zap.Error(err))
	}
	reportingSvc := reportingsvc.NewService(inventory, cfg.Inventory.Currency, logger.Named(baseLogger, "svc.reporting"))

	var (
		publishers []scheduler.Publisher
		messenger  handlers.Messenger
		archive    handlers.Archive
	)

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		publishers = append(publishers, mongoRepo)
		archive = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, report archive disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		publishers = append(publishers, sheets.NewSummaryExporter(sheetsRepo))
	}

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(whatsClient, reportingSvc, cfg.WhatsApp.ReportRecipient, logger.Named(baseLogger, "svc.whatsapp"))
		publishers = append(publishers, messagingSvc)
		messenger = messagingSvc
		baseLogger.Info("whatsapp delivery enabled")
	} else {
		baseLogger.Warn("whatsapp token missing, report delivery disabled")
	}

	inventoryHandler := handlers.NewInventoryHandler(inventory, reportingSvc, messenger, archive, logger.Named(baseLogger, "handlers.inventory"))
	engine := router.New(inventoryHandler, logger.Named(baseLogger, "router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, publishers, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("data_dir", cfg.Inventory.DataDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
