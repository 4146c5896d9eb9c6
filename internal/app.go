package internal

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"listing-service/internal/adapters/catalog"
	"listing-service/internal/adapters/datasetfile"
	"listing-service/internal/adapters/formrelay"
	logger_adapter "listing-service/internal/adapters/logger"
	postgres_adapter "listing-service/internal/adapters/postgres"
	rabbitmq_adapter "listing-service/internal/adapters/rabbitmq"
	"listing-service/internal/adapters/reloader"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	fluentlogger "listing-service/pkg/fluent_logger"
	"listing-service/pkg/postgres"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const initialLoadTimeout = 30 * time.Second

// App – структура приложения
type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher
	fluentClient  *fluent.Fluent
	apiServer     *rest.Server
	logger        port.LoggerPort

	// фоновые слушатели: очередь заявок и перезагрузка данных, оба необязательны
	listeners map[string]port.EventListenerPort
}

// NewApp создает приложение и связывает все зависимости
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig, listeners: make(map[string]port.EventListenerPort)}

	// --- 1. Логгеры ---
	baseLogger, err := app.initLoggers()
	if err != nil {
		return nil, err
	}
	app.logger = baseLogger.WithFields(port.Fields{"component": "app"})

	// --- 2. Источник данных и каталог ---
	source, err := app.initDatasetSource(baseLogger)
	if err != nil {
		app.closeResources()
		return nil, err
	}

	store := catalog.NewStore()
	reloadDatasetUseCase := usecase.NewReloadDatasetUseCase(source, store)

	loadCtx, cancel := context.WithTimeout(context.Background(), initialLoadTimeout)
	loadCtx = contextkeys.ContextWithLogger(loadCtx, baseLogger.WithFields(port.Fields{"component": "initial_load"}))
	err = reloadDatasetUseCase.Execute(loadCtx)
	cancel()
	if err != nil {
		app.logger.Error("Initial dataset load failed", err, nil)
		app.closeResources()
		return nil, fmt.Errorf("initial dataset load failed: %w", err)
	}
	app.logger.Info("Dataset loaded", port.Fields{"source": source.Name(), "counts": store.Info().Counts})

	// --- 3. Исходящие адаптеры ---
	relayClient, err := formrelay.NewClient(formrelay.Config{
		Endpoint:     appConfig.FormRelay.URL,
		Origin:       appConfig.FormRelay.Origin,
		ContactNext:  appConfig.FormRelay.ContactNext,
		PropertyNext: appConfig.FormRelay.InquiryNext,
		Timeout:      appConfig.FormRelay.Timeout,
	})
	if err != nil {
		app.logger.Error("Failed to create form relay client", err, nil)
		app.closeResources()
		return nil, fmt.Errorf("failed to create form relay client: %w", err)
	}

	// --- 4. Use cases ---
	relayInquiryUseCase := usecase.NewRelayInquiryUseCase(relayClient)
	redirects := usecase.InquiryRedirects{
		Contact:  appConfig.FormRelay.ContactNext,
		Property: appConfig.FormRelay.InquiryNext,
	}

	var inquiryQueue port.InquiryQueuePort
	if appConfig.RabbitMQ.URL != "" {
		queueAdapter, err := app.initRabbitMQ(baseLogger, relayInquiryUseCase)
		if err != nil {
			app.closeResources()
			return nil, err
		}
		inquiryQueue = queueAdapter
	} else {
		app.logger.Info("RABBITMQ_URL is not set, inquiries will be relayed synchronously", nil)
	}

	submitInquiryUseCase := usecase.NewSubmitInquiryUseCase(store, inquiryQueue, relayInquiryUseCase, redirects)

	if appConfig.Dataset.ReloadInterval > 0 {
		datasetReloader, err := reloader.NewDatasetReloader(reloadDatasetUseCase, appConfig.Dataset.ReloadInterval,
			baseLogger.WithFields(port.Fields{"component": "dataset_reloader"}))
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to create dataset reloader: %w", err)
		}
		app.listeners["Dataset Reloader"] = datasetReloader
	}
	app.logger.Info("All use cases initialized.", nil)

	// --- 5. REST API ---
	handlers := rest.Handlers{
		Property: rest.NewPropertyHandler(
			usecase.NewFindPropertiesUseCase(store),
			usecase.NewGetPropertyDetailsUseCase(store),
			usecase.NewGetFilterOptionsUseCase(store),
		),
		Directory: rest.NewDirectoryHandler(
			usecase.NewGetHomeUseCase(store),
			usecase.NewGetAgentsUseCase(store),
			usecase.NewGetServicesUseCase(store),
		),
		Inquiry: rest.NewInquiryHandler(submitInquiryUseCase),
		Health:  rest.NewHealthHandler(store),
	}
	router := rest.NewRouter(handlers, appConfig.Rest.CORSAllowedOrigins, baseLogger)
	app.apiServer = rest.NewServer(appConfig.Rest.Port, router, baseLogger.WithFields(port.Fields{"component": "rest_server"}))

	return app, nil
}

func (a *App) initLoggers() (port.LoggerPort, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    configs.ParseLogLevel(a.config.StdoutLogger.Level),
		IsJSON:   a.config.StdoutLogger.JSON,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if a.config.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      a.config.FluentBit.Host,
			Port:      a.config.FluentBit.Port,
			TagPrefix: a.config.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		a.fluentClient = fluentClient

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, configs.ParseLogLevel(a.config.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			_ = fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": a.config.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": a.config.FluentBit.Enabled,
	})
	return baseLogger, nil
}

func (a *App) initDatasetSource(baseLogger port.LoggerPort) (port.DatasetSourcePort, error) {
	if a.config.Dataset.Source != configs.DatasetSourcePostgres {
		source, err := datasetfile.NewSource(a.config.Dataset.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create dataset file source: %w", err)
		}
		return source, nil
	}

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL:    a.config.Postgres.URL,
		MaxConns:       a.config.Postgres.MaxConns,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		baseLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	baseLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	source, err := postgres_adapter.NewDatasetSource(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres dataset source: %w", err)
	}
	return source, nil
}

// initRabbitMQ поднимает соединение, издателя и слушателя очереди заявок
func (a *App) initRabbitMQ(baseLogger port.LoggerPort, relayUseCase *usecase.RelayInquiryUseCase) (*rabbitmq_adapter.InquiryQueueAdapter, error) {
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(a.config.RabbitMQ.URL, 0, connManagerBridge)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager
	a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	eventProducer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:    constants.InquiriesExchange,
		ExchangeType:    "direct",
		Durable:         true,
		DeclareExchange: true,
		Logger:          rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create event producer", err, nil)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.eventProducer = eventProducer

	queueAdapter, err := rabbitmq_adapter.NewInquiryQueueAdapter(eventProducer)
	if err != nil {
		return nil, err
	}

	consumerCfg := rabbitmq_adapter.InquiryConsumerConfig(a.config.RabbitMQ.MaxRetries, a.config.RabbitMQ.RetryDelay)
	inquiryListener, err := rabbitmq_adapter.NewInquiryConsumerAdapter(consumerCfg, relayUseCase,
		baseLogger.WithFields(port.Fields{"component": "inquiry_consumer"}), connManager)
	if err != nil {
		a.logger.Error("Failed to initialize Inquiry Events Listener", err, nil)
		return nil, err
	}
	a.listeners["Inquiry Events Listener"] = inquiryListener
	a.logger.Info("Inquiry Events Listener initialized.", nil)

	return queueAdapter, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Rest.ShutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error stopping api server", err, nil)
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	componentErrors := make(chan error, len(a.listeners)+1)

	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			componentErrors <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	for name, listener := range a.listeners {
		wg.Add(1)
		go startListener(name, listener)
	}

	go func() {
		if err := a.apiServer.Start(); err != nil {
			componentErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
	case err := <-componentErrors:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		runErr = err
	}

	cancelApp()
	return runErr
}

// closeResources закрывает все, что успели открыть; повторный вызов безопасен
func (a *App) closeResources() {
	for name, listener := range a.listeners {
		if err := listener.Close(); err != nil {
			a.logError("Error closing listener "+name, err)
		}
	}
	a.listeners = nil

	if a.eventProducer != nil {
		if err := a.eventProducer.Close(); err != nil {
			a.logError("Error closing event producer", err)
		}
		a.eventProducer = nil
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logError("Error closing RabbitMQ connection manager", err)
		}
		a.connManager = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
	}

	if a.logger != nil {
		a.logger.Info("Application resources released.", nil)
	}

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			log.Printf("App: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}

func (a *App) logError(msg string, err error) {
	if a.logger != nil {
		a.logger.Error(msg, err, nil)
		return
	}
	log.Printf("App: %s: %v\n", msg, err)
}
