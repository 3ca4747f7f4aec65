package internal

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	clock_adapter "github.com/saurav73/GrihaMate/internal/adapters/clock"
	email_adapter "github.com/saurav73/GrihaMate/internal/adapters/email"
	token_adapter "github.com/saurav73/GrihaMate/internal/adapters/jwt"
	logger_adapter "github.com/saurav73/GrihaMate/internal/adapters/logger"
	payment_adapter "github.com/saurav73/GrihaMate/internal/adapters/payment"
	postgres_adapter "github.com/saurav73/GrihaMate/internal/adapters/postgres"
	rabbitmq_adapter "github.com/saurav73/GrihaMate/internal/adapters/rabbitmq"
	"github.com/saurav73/GrihaMate/internal/adapters/rest"
	"github.com/saurav73/GrihaMate/internal/configs"
	"github.com/saurav73/GrihaMate/internal/constants"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/usecase"
	"github.com/saurav73/GrihaMate/migrations"
	fluentlogger "github.com/saurav73/GrihaMate/pkg/fluent_logger"
	"github.com/saurav73/GrihaMate/pkg/postgres"
	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_common"
	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_consumer"
	"github.com/saurav73/GrihaMate/pkg/rabbitmq/rabbitmq_producer"
)

// App - структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	notificationListener  port.EventListenerPort
	notificationsProducer *rabbitmq_producer.Publisher
	rabbitMQManager       *rabbitmq_common.ConnectionManager
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	// Применяем миграции при старте. goose работает поверх database/sql.
	migrationDB, err := sql.Open("pgx", appConfig.Database.URL)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}
	if err := migrations.Run(migrationDB); err != nil {
		migrationDB.Close()
		dbPool.Close()
		appLogger.Error("Failed to apply migrations", err, nil)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	migrationDB.Close()
	appLogger.Info("Database migrations applied.", nil)

	userRepo, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	propertyRepo, err := postgres_adapter.NewPropertyRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create property repository: %w", err)
	}
	requestRepo, err := postgres_adapter.NewPropertyRequestRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create property request repository: %w", err)
	}
	roomRequestRepo, err := postgres_adapter.NewRoomRequestRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create room request repository: %w", err)
	}
	subscriptionRepo, err := postgres_adapter.NewSubscriptionRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create subscription repository: %w", err)
	}
	appLogger.Info("Postgres repositories initialized.", nil)

	systemClock := clock_adapter.NewSystemClock()

	tokenService, err := token_adapter.NewTokenService(appConfig.JWT.SigningKey)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	esewaSigner, err := payment_adapter.NewEsewaSigner(payment_adapter.EsewaConfig{
		SecretKey:   appConfig.Esewa.SecretKey,
		ProductCode: appConfig.Esewa.ProductCode,
		SuccessURL:  appConfig.Esewa.SuccessURL,
		FailureURL:  appConfig.Esewa.FailureURL,
	})
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create esewa signer: %w", err)
	}

	mailer, err := email_adapter.NewSMTPMailer(email_adapter.SMTPConfig{
		Host:     appConfig.SMTP.Host,
		Port:     appConfig.SMTP.Port,
		Username: appConfig.SMTP.Username,
		Password: appConfig.SMTP.Password,
		From:     appConfig.SMTP.From,
	})
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create smtp mailer: %w", err)
	}

	// --- 3. RABBITMQ ---
	producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
	pkgLoggerBridge := rabbitmq_adapter.NewPkgLoggerBridge(producerLogger)

	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
	connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, connManagerBridge)
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.NotificationsExchange,
		ExchangeType:             "direct",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,

		Logger: pkgLoggerBridge,
	}
	notificationsProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		appLogger.Error("Failed to create notifications producer", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create notifications producer: %w", err)
	}

	notifier, err := rabbitmq_adapter.NewNotificationDispatcherAdapter(notificationsProducer, constants.RoutingKeyNotifications)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create notification dispatcher: %w", err)
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 4. USE CASES (ядро бизнес-логики) ---
	registerUser := usecase.NewRegisterUserUseCase(userRepo, tokenService, systemClock, appConfig.JWT.AccessTokenTTL)
	loginUser := usecase.NewLoginUserUseCase(userRepo, tokenService, appConfig.JWT.AccessTokenTTL)
	validateToken := usecase.NewValidateTokenUseCase(tokenService)
	reviewUserVerification := usecase.NewReviewUserVerificationUseCase(userRepo, notifier)
	upgradeSubscription := usecase.NewUpgradeSubscriptionUseCase(userRepo)

	createProperty := usecase.NewCreatePropertyUseCase(propertyRepo, userRepo, systemClock)
	updateProperty := usecase.NewUpdatePropertyUseCase(propertyRepo, systemClock)
	deleteProperty := usecase.NewDeletePropertyUseCase(propertyRepo, requestRepo)
	updatePropertyStatus := usecase.NewUpdatePropertyStatusUseCase(propertyRepo, requestRepo, systemClock)
	getProperty := usecase.NewGetPropertyUseCase(propertyRepo)
	searchProperties := usecase.NewSearchPropertiesUseCase(propertyRepo, requestRepo, systemClock)
	listLandlordProperties := usecase.NewListLandlordPropertiesUseCase(propertyRepo)
	notifyPropertyMatches := usecase.NewNotifyPropertyMatchesUseCase(roomRequestRepo, subscriptionRepo, userRepo, notifier)
	reviewPropertyVerification := usecase.NewReviewPropertyVerificationUseCase(propertyRepo, userRepo, notifier, notifyPropertyMatches)

	createPropertyRequest := usecase.NewCreatePropertyRequestUseCase(requestRepo, propertyRepo, userRepo, notifier, systemClock)
	updateRequestStatus := usecase.NewUpdateRequestStatusUseCase(requestRepo, propertyRepo, userRepo, notifier, systemClock)
	confirmBookingPayment := usecase.NewConfirmBookingPaymentUseCase(requestRepo, propertyRepo, systemClock)
	deletePropertyRequest := usecase.NewDeletePropertyRequestUseCase(requestRepo)
	purgeRejectedRequests := usecase.NewPurgeRejectedRequestsUseCase(requestRepo)
	listSeekerRequests := usecase.NewListSeekerRequestsUseCase(requestRepo)
	listLandlordRequests := usecase.NewListLandlordRequestsUseCase(requestRepo)
	getRequestForProperty := usecase.NewGetRequestForPropertyUseCase(requestRepo)

	notifyRoomRequestMatches := usecase.NewNotifyRoomRequestMatchesUseCase(propertyRepo, userRepo, notifier)
	createRoomRequest := usecase.NewCreateRoomRequestUseCase(roomRequestRepo, userRepo, notifyRoomRequestMatches, systemClock)
	updateRoomRequest := usecase.NewUpdateRoomRequestUseCase(roomRequestRepo, notifyRoomRequestMatches, systemClock)
	deleteRoomRequest := usecase.NewDeleteRoomRequestUseCase(roomRequestRepo)
	listSeekerRoomRequests := usecase.NewListSeekerRoomRequestsUseCase(roomRequestRepo)
	subscribeAvailability := usecase.NewSubscribeAvailabilityUseCase(subscriptionRepo, systemClock)
	unsubscribeAvailability := usecase.NewUnsubscribeAvailabilityUseCase(subscriptionRepo)
	listSeekerSubscriptions := usecase.NewListSeekerSubscriptionsUseCase(subscriptionRepo)

	initiateEsewaPayment := usecase.NewInitiateEsewaPaymentUseCase(esewaSigner, systemClock)
	verifyEsewaCallback := usecase.NewVerifyEsewaCallbackUseCase(esewaSigner, confirmBookingPayment, upgradeSubscription)
	processCardPayment := usecase.NewProcessCardPaymentUseCase(confirmBookingPayment, upgradeSubscription, systemClock)

	appLogger.Info("All use cases initialized.", nil)

	// --- 5. ВХОДЯЩИЕ АДАПТЕРЫ ---
	notificationConsumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueueNotifications,
		DurableQueue:        true,
		ExchangeNameForBind: constants.NotificationsExchange,
		RoutingKeyForBind:   constants.RoutingKeyNotifications,
		PrefetchCount:       1,
		ConsumerTag:         "notification-mailer-adapter",
		DeclareQueue:        true,

		EnableRetryMechanism: true,
		RetryExchange:        constants.QueueNotifications + "_retry_ex",
		RetryQueue:           constants.QueueNotifications + "_retry_wait_10s",
		RetryTTL:             10000, // 10 секунд в миллисекундах
		FinalDLXExchange:     constants.NotificationsFinalDLXExchange,
		FinalDLQ:             constants.NotificationsFinalDLQ,
		FinalDLQRoutingKey:   constants.NotificationsFinalDLQRoutingKey,
		MaxRetries:           3,
	}
	notificationListener, err := rabbitmq_adapter.NewNotificationConsumerAdapter(notificationConsumerCfg, mailer, baseLogger, connManager)
	if err != nil {
		appLogger.Error("Failed to create notification listener", err, nil)
		dbPool.Close()
		return nil, err
	}
	appLogger.Info("Notification Events Listener initialized.", nil)

	// REST API Server
	authHandler := rest.NewAuthHandler(registerUser, loginUser)
	propertyHandler := rest.NewPropertyHandler(createProperty, updateProperty, deleteProperty, updatePropertyStatus, getProperty, searchProperties, listLandlordProperties)
	requestHandler := rest.NewRequestHandler(createPropertyRequest, updateRequestStatus, deletePropertyRequest, purgeRejectedRequests, listSeekerRequests, listLandlordRequests, getRequestForProperty)
	roomRequestHandler := rest.NewRoomRequestHandler(createRoomRequest, updateRoomRequest, deleteRoomRequest, listSeekerRoomRequests, subscribeAvailability, unsubscribeAvailability, listSeekerSubscriptions)
	paymentHandler := rest.NewPaymentHandler(initiateEsewaPayment, verifyEsewaCallback, processCardPayment)
	adminHandler := rest.NewAdminHandler(reviewUserVerification, reviewPropertyVerification)
	authMiddleware := rest.NewAuthMiddleware(validateToken)

	apiServer := rest.NewServer(appConfig.HTTP.Port,
		authHandler, propertyHandler, requestHandler, roomRequestHandler, paymentHandler, adminHandler,
		authMiddleware, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:                appConfig,
		dbPool:                dbPool,
		apiServer:             apiServer,
		notificationListener:  notificationListener,
		notificationsProducer: notificationsProducer,
		rabbitMQManager:       connManager,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.notificationListener != nil {
			if err := a.notificationListener.Close(); err != nil {
				a.logger.Error("Error closing notification listener", err, nil)
			}
		}

		if a.notificationsProducer != nil {
			if err := a.notificationsProducer.Close(); err != nil {
				a.logger.Error("Error closing notifications producer", err, nil)
			}
		}

		if a.rabbitMQManager != nil {
			if err := a.rabbitMQManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	wg.Add(1)
	go startListener("Notification Events Listener", a.notificationListener)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.HTTP.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
