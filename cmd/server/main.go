package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"mesaYaFloor/internal/config"
	floorhandler "mesaYaFloor/internal/modules/floor/application/handler"
	floorusecase "mesaYaFloor/internal/modules/floor/application/usecase"
	floordomain "mesaYaFloor/internal/modules/floor/domain"
	floorinfra "mesaYaFloor/internal/modules/floor/infrastructure"
	rtusecase "mesaYaFloor/internal/modules/realtime/application/usecase"
	"mesaYaFloor/internal/modules/realtime/infrastructure"
	transport "mesaYaFloor/internal/modules/realtime/interface"
	"mesaYaFloor/internal/platform/broker"
	"mesaYaFloor/internal/shared/auth"
	"mesaYaFloor/internal/shared/logging"
)

func main() {
	// Load .env first so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.Any("topics", cfg.Kafka.Topics))

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	broadcastUC := rtusecase.NewBroadcastUseCase(hub)
	sessions := floorusecase.NewSessionManager()

	validator := auth.NewJWTValidatorWithPublicKey(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	floorClient := floorinfra.NewFloorHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)

	projector := floordomain.ProjectorConfig{
		UpcomingLateMinutes:    cfg.Floor.UpcomingLateMinutes,
		UpcomingLeadMinutes:    cfg.Floor.UpcomingLeadMinutes,
		DefaultTurnTimeMinutes: cfg.Floor.DefaultTurnTimeMinutes,
	}

	for _, topic := range cfg.Kafka.Topics {
		registry.Register(floorhandler.NewFloorRefreshHandler(topic, nil, broadcastUC, sessions))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topics)

	gateway := transport.NewFloorGateway(transport.FloorGatewayParams{
		Hub:             hub,
		Validator:       validator,
		Sessions:        sessions,
		Fetcher:         floorClient,
		Submitter:       floorClient,
		Broadcast:       broadcastUC,
		Projector:       projector,
		ZoneSettleDelay: cfg.Floor.ZoneSettleDelay,
		SendBuffer:      cfg.Websocket.SendBuffer,
	})

	e := echo.New()
	e.Logger.SetOutput(log.Writer())
	floorHandler := gateway.Handler()
	e.GET("/ws/floor/:restaurant/:section/:token", floorHandler)
	e.GET("/ws/floor/:restaurant/:section", floorHandler)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
