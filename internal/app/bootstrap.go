package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront-cart/config"
	"github.com/Gunvolt24/storefront-cart/internal/catalog"
	"github.com/Gunvolt24/storefront-cart/internal/kafka"
	"github.com/Gunvolt24/storefront-cart/internal/ports"
	rest "github.com/Gunvolt24/storefront-cart/internal/transport/http"
	"github.com/Gunvolt24/storefront-cart/internal/usecase"
	"github.com/Gunvolt24/storefront-cart/pkg/httpx"
	"github.com/Gunvolt24/storefront-cart/pkg/logger"
	"github.com/Gunvolt24/storefront-cart/pkg/metrics"
	"github.com/Gunvolt24/storefront-cart/pkg/telemetry"
	"github.com/Gunvolt24/storefront-cart/pkg/validate"
	"github.com/gin-gonic/gin"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, фоновые воркеры).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.MessageConsumer // консьюмер checkout-событий; nil, если Kafka выключена
	Janitor         ports.MessageConsumer // чистка истёкших слотов; nil для Redis
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Хранилище слотов корзин.
	backend, err := openStorage(ctx, cfg, logg)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Публикация событий корзины (опционально).
	var (
		publisher *kafka.Publisher
		listeners []usecase.CartListener
	)
	if cfg.Kafka.Enabled && cfg.Kafka.EventsTopic != "" {
		publisher = kafka.NewPublisher(&kafka.PublisherConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		}, logg)
		listeners = append(listeners, publisher.Publish)
		logg.Infof(ctx, "cart events publishing enabled topic=%s", cfg.Kafka.EventsTopic)
	}

	// Сборка зависимостей доменного слоя.
	catalogClient := catalog.NewClient(catalog.Options{
		BaseURL:    cfg.Catalog.BaseURL,
		Timeout:    cfg.Catalog.Timeout,
		MaxRetries: cfg.Catalog.MaxRetries,
	}, logg)
	cartService := usecase.NewCartService(
		backend.storage,
		validate.NewCartValidator(),
		catalogClient,
		logg,
		usecase.CartServiceOptions{
			StoreCacheCapacity: cfg.Cache.Capacity,
			StoreCacheTTL:      cfg.Cache.TTL,
			CatalogConcurrency: cfg.Catalog.Concurrency,
		},
		listeners...,
	)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(cartService, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, rest.RouterOptions{
		StaticDir:       cfg.HTTP.StaticDir,
		OTelServiceName: otelServiceName,
		Session: httpx.CartSessionOptions{
			CookieName: cfg.Session.CookieName,
			MaxAge:     cfg.Session.MaxAge,
			Secure:     cfg.Session.Secure,
		},
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Консьюмер checkout-событий: заказ оформлен → корзина очищается.
	if cfg.Kafka.Enabled {
		app.KafkaConsumer = kafka.NewConsumer(&kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}, cartService, logg)
	}

	if backend.purger != nil {
		app.Janitor = NewJanitor(backend.purger, cfg.Storage.PurgeInterval, logg)
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logg.Warnf(ctx, "kafka publisher close error: %v", err)
			}
		}
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if app.KafkaConsumer != nil {
			if err := app.KafkaConsumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}

		backend.close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и фоновые воркеры; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 3)

	runCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	var wg sync.WaitGroup
	startWorker := func(name string, w ports.MessageConsumer) {
		if w == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Logger.Infof(ctx, "%s starting", name)
			if err := w.Run(runCtx); err != nil {
				errCh <- err
			}
		}()
	}

	startWorker("kafka consumer", a.KafkaConsumer)
	startWorker("slot janitor", a.Janitor)

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка воркеров
	stopWorkers()
	wg.Wait()

	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
