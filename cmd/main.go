package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-hotseat/api"
	"github.com/saeidalz13/battleship-hotseat/db"
	"github.com/saeidalz13/battleship-hotseat/db/sqlc"
	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
	mc "github.com/saeidalz13/battleship-hotseat/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	shutdownTimeout = time.Second * 10
)

type config struct {
	stage        string
	port         int
	psqlUrl      string
	migrationDir string
}

func mustLoadConfig() config {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}

	stage := os.Getenv("STAGE")
	if stage != StageDev && stage != StageProd {
		panic(cerr.ErrInvalidStage(stage))
	}

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		panic(err)
	}

	migrationDir := os.Getenv("MIGRATION_DIR")
	if migrationDir == "" {
		migrationDir = db.DefaultMigrationDir
	}

	return config{
		stage:        stage,
		port:         port,
		psqlUrl:      os.Getenv("DATABASE_URL"),
		migrationDir: migrationDir,
	}
}

func mustNewLogger(stage string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if stage == StageProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func main() {
	cfg := mustLoadConfig()
	logger := mustNewLogger(cfg.stage)
	defer func() { _ = logger.Sync() }()

	// Analytics are optional; without a database the
	// game server runs on its own
	var dbManager sqlc.DbManager
	if cfg.psqlUrl != "" {
		conn := db.MustConnectToDb(cfg.psqlUrl, cfg.migrationDir, logger)
		defer conn.Close()
		dbManager = sqlc.NewDbManager(conn)
	} else {
		logger.Warn("DATABASE_URL is empty; analytics disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionManager := mc.NewBattleshipSessionManager(logger)
	go sessionManager.CleanupPeriodically(ctx.Done())

	gameManager := mb.NewBattleshipGameManager()
	rp := api.NewRequestProcessor(sessionManager, gameManager, dbManager, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.Int("port", cfg.port), zap.String("stage", cfg.stage))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
}
