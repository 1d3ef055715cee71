package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nwbc/credit-decision-service/internal/application/usecase"
	"github.com/nwbc/credit-decision-service/internal/domain/port"
	"github.com/nwbc/credit-decision-service/internal/domain/service"
	"github.com/nwbc/credit-decision-service/internal/infrastructure/adapter"
	"github.com/nwbc/credit-decision-service/internal/infrastructure/cache"
	"github.com/nwbc/credit-decision-service/internal/infrastructure/config"
	"github.com/nwbc/credit-decision-service/internal/infrastructure/messaging"
	"github.com/nwbc/credit-decision-service/internal/observability"
	"github.com/nwbc/credit-decision-service/internal/presentation/rest"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting credit decision service", "http_port", cfg.HTTPPort)

	// --- Reference tables ---------------------------------------------------
	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		logger.Error("failed to load reference tables", "error", err)
		os.Exit(1)
	}

	// --- Metrics ------------------------------------------------------------
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// --- Provider adapters ---------------------------------------------------
	var debtClient port.DebtBureauClient
	var personClient port.PersonRegistryClient
	var bureauClient port.BureauVariablesClient

	if cfg.DebtBureau.BaseURL != "" {
		debtClient = adapter.NewDebtBureauAdapter(cfg.DebtBureau.BaseURL, time.Duration(cfg.DebtBureau.TimeoutSeconds)*time.Second)
	} else {
		logger.Warn("DEBT_BUREAU_URL not set, using deterministic stub")
		debtClient = adapter.NewStubDebtBureauClient()
	}
	if cfg.PersonReg.BaseURL != "" {
		personClient = adapter.NewPersonRegistryAdapter(cfg.PersonReg.BaseURL, time.Duration(cfg.PersonReg.TimeoutSeconds)*time.Second)
	} else {
		logger.Warn("PERSON_REGISTRY_URL not set, using deterministic stub")
		personClient = adapter.NewStubPersonRegistryClient()
	}
	if cfg.CreditBureau.BaseURL != "" {
		bureauClient = adapter.NewCreditBureauAdapter(cfg.CreditBureau.BaseURL, time.Duration(cfg.CreditBureau.TimeoutSeconds)*time.Second)
	} else {
		logger.Warn("CREDIT_BUREAU_URL not set, using deterministic stub")
		bureauClient = adapter.NewStubBureauVariablesClient()
	}

	// --- Payload cache -------------------------------------------------------
	if cfg.Redis.Addr != "" {
		payloadCache := cache.NewRedisCache(cfg.Redis.Addr, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		debtClient = cache.NewCachedDebtBureauClient(debtClient, payloadCache, logger)
		personClient = cache.NewCachedPersonRegistryClient(personClient, payloadCache, logger)
		bureauClient = cache.NewCachedBureauVariablesClient(bureauClient, payloadCache, logger)
		logger.Info("provider payload cache enabled", "addr", cfg.Redis.Addr)
	}

	// --- Event publisher -----------------------------------------------------
	var publisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := messaging.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("decision event stream enabled", "topic", cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewLogEventPublisher(logger)
	}

	// --- Decision engine -----------------------------------------------------
	extractor := service.NewFeatureExtractor(tables.Coefficients, tables.Provinces)
	scorer := service.NewScoringEngine(tables.Coefficients)
	resolver := service.NewOfferResolver(tables.RiskBands, tables.Offers)
	gates := service.NewGateChain()

	evaluateUC := usecase.NewEvaluateApplicantUseCase(
		debtClient, personClient, bureauClient, publisher,
		gates, extractor, scorer, resolver, logger,
	)

	// --- HTTP server ---------------------------------------------------------
	mux := http.NewServeMux()
	rest.NewEvaluationHandler(evaluateUC, logger).RegisterRoutes(mux)
	rest.NewHealthHandler(logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	limiter := rest.NewRateLimiter(50, time.Second)
	defer limiter.Stop()
	handler := rest.LoggingMiddleware(logger)(rest.RateLimitMiddleware(limiter)(mux))

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: handler,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown ---------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit decision service stopped")
}
