package main

import (
	"context"
	"expvar"
	"log"
	"runtime"
	"time"

	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/configs"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/events"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/messaging"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/metrics"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/repository"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/tracing"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/ws"
	"github.com/devSobrinho/socket-io-backend/internal/persistence/db"
	auditrepo "github.com/devSobrinho/socket-io-backend/internal/persistence/repository"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/api"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/gateway"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/handler/health"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/handler/messages"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/handler/rooms"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	serviceName = "socket-io-backend"
)

func main() {
	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		FilePath: cfg.Logger.FilePath,
		Encoding: cfg.Logger.Encoding,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		tracerCfg := tracing.NewDefaultConfig(serviceName)
		tracerCfg.Endpoint = cfg.Tracing.Endpoint

		sh, err := tracing.InitTracer(tracerCfg)
		if err != nil {
			logger.Fatalf("failed to initialize the tracer: %v", err)
		}
		defer sh(ctx)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(promRegistry)

	roomRegistry := repository.NewRoomRegistry()
	hub := ws.NewHub(logger)

	var roomPublisher *events.RoomPublisher
	if cfg.Broker.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.Broker.URI)
		if err != nil {
			logger.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer rabbitmq.Close()

		logger.Info(logging.RabbitMQ, logging.Startup, "RabbitMQ connection established", nil)
		roomPublisher = events.NewRoomPublisher(rabbitmq)

		roomConsumer := events.NewRoomConsumer(rabbitmq, logger)
		go func() {
			if err := roomConsumer.Listen(); err != nil {
				logger.Errorf("room consumer stopped: %v", err)
			}
		}()
	}

	audit := auditrepo.NewNopRoomAuditRepository()
	if cfg.Audit.Enabled {
		mongoCfg := &db.MongoConfig{
			URI:      cfg.Audit.URI,
			Database: cfg.Audit.Database,
		}

		client, err := db.NewMongoClient(ctx, mongoCfg)
		if err != nil {
			logger.Fatalf("failed to connect to mongodb: %v", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			_ = db.DisconnectMongo(shutdownCtx, client)
		}()

		audit = auditrepo.NewRoomAuditLogRepository(db.GetDatabase(client, mongoCfg))
		if err := audit.EnsureIndexes(ctx); err != nil {
			logger.Warnf("failed to ensure audit indexes: %v", err)
		}

		logger.Info(logging.Mongo, logging.Startup, "audit store connected", nil)
	}

	roomHandler := rooms.NewHandler(roomRegistry, hub, roomPublisher, audit, appMetrics, logger)
	messageHandler := messages.NewHandler(roomRegistry, roomPublisher, appMetrics, logger)
	healthHandler := health.NewHandler()

	gw := gateway.New(hub, roomHandler, messageHandler, appMetrics, logger, cfg.HTTP.AllowedOrigins)

	app := api.NewApplication(*cfg, gw, healthHandler, promRegistry, logger)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
