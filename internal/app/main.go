package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/broker"
	kafkabroker "github.com/jacostamo01/CalculadoraNoviembre01/internal/broker/kafka"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/cache"
	rediscache "github.com/jacostamo01/CalculadoraNoviembre01/internal/cache/redis"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/config"
	httpv1 "github.com/jacostamo01/CalculadoraNoviembre01/internal/controller/http/v1"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/metrics"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/service"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/telemetry"
	errorsUtils "github.com/jacostamo01/CalculadoraNoviembre01/pkg/errors"
	"github.com/jacostamo01/CalculadoraNoviembre01/pkg/httpserver"
	"github.com/jacostamo01/CalculadoraNoviembre01/pkg/logger"
	"github.com/jacostamo01/CalculadoraNoviembre01/pkg/postgres"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

const (
	cacheConnectTimeout   = 3 * time.Second
	tracerShutdownTimeout = 5 * time.Second
)

func Run() {
	// Config
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level, cfg.Log.File)
	log.Info("Logger has been set up")

	// Tracing
	shutdownTracer, err := telemetry.Init(telemetry.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Warn(errorsUtils.WrapPathErr(err))
	}

	// Migrations
	if cfg.Migrations.Enabled {
		Migrate(cfg.PG.URL())
	}

	// DB connecting
	log.Info("Connecting to DB")
	pg, err := postgres.New(cfg.PG.URL(), postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer pg.Close()
	log.WithField("max_pool_size", pg.MaxPoolSize()).Info("Connected to DB")

	// Repos
	repositories := repo.NewRepositories(pg)

	// Broker
	var producer broker.Producer = broker.NopProducer{}
	if len(cfg.Kafka.Brokers) > 0 {
		log.WithField("topic", cfg.Kafka.Topic).Info("Publishing operation log events to Kafka")
		producer = kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
	}

	// Cache
	var opLogCache cache.OperationLog = cache.Nop{}
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cacheConnectTimeout)
		c, err := rediscache.New(ctx, rediscache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		cancel()
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, running without cache")
		} else {
			opLogCache = c
		}
	}

	// Services
	counters := metrics.New()
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       counters,
		BrokerProducer: producer,
		Cache:          opLogCache,
	}
	services := service.NewServices(deps)

	// HTTP API server
	log.Infof("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	metrics.ConfigureMiddleware(apiHandler)
	httpv1.ConfigureRouter(apiHandler, services, counters)
	apiServer := httpserver.New(
		telemetry.WrapHandler(apiHandler, cfg.App.Name),
		httpserver.Port(cfg.HTTP.Port),
	)

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-apiServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	if err := apiServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := producer.Close(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := opLogCache.Close(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
	defer cancel()
	if err := shutdownTracer(ctx); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
}
