package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/cancel_booking"
	cancelSlotBookingsHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/cancel_slot_bookings"
	createBookingHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/create_booking"
	createSlotHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/delete_slot"
	getBookingHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/get_booking"
	getCarBookingsHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/get_car_bookings"
	getSlotHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/get_slot"
	getSlotBookingsHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/get_slot_bookings"
	healthHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/health"
	listSlotsHandler "github.com/luklinx/carsabeg-sub000/internal/api/handlers/list_slots"
	"github.com/luklinx/carsabeg-sub000/internal/api/middleware"
	"github.com/luklinx/carsabeg-sub000/internal/config"
	"github.com/luklinx/carsabeg-sub000/internal/infra/events"
	bookingRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/booking"
	"github.com/luklinx/carsabeg-sub000/internal/infra/storage/migrations"
	slotRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/slot"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/emailservice"
	listingServiceClient "github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/smsgateway"
	"github.com/luklinx/carsabeg-sub000/internal/notification"
	"github.com/luklinx/carsabeg-sub000/internal/service/availability"
	bookingsService "github.com/luklinx/carsabeg-sub000/internal/service/bookings"
	slotsService "github.com/luklinx/carsabeg-sub000/internal/service/slots"
	createBookingUC "github.com/luklinx/carsabeg-sub000/internal/usecase/create_booking"
	"github.com/luklinx/carsabeg-sub000/pkg/dbmetrics"
	"github.com/luklinx/carsabeg-sub000/pkg/logger"
	"github.com/luklinx/carsabeg-sub000/pkg/metrics"
	"github.com/luklinx/carsabeg-sub000/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting inspections service...")

	// Метрики создаются всегда: usecase и диспетчер пишут в них без проверок,
	// наружу /metrics публикуется только при metrics.enabled
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithLockTimeout(cfg.Database.LockTimeout()))

	// Репозитории
	slotRepository := slotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Интеграционные клиенты
	listingClient := listingServiceClient.NewClient(
		cfg.ListingService.URL,
		time.Duration(cfg.ListingService.Timeout)*time.Second,
		log,
	)
	emailClient := emailservice.NewClient(emailservice.Config{
		APIURL:  cfg.Email.APIURL,
		APIKey:  cfg.Email.APIKey,
		From:    cfg.Email.From,
		Timeout: time.Duration(cfg.Email.Timeout) * time.Second,
	})
	smsClient := smsgateway.NewClient(smsgateway.Config{
		APIURL:     cfg.SMS.APIURL,
		AccountSID: cfg.SMS.AccountSID,
		AuthToken:  cfg.SMS.AuthToken,
		From:       cfg.SMS.From,
		Timeout:    time.Duration(cfg.SMS.Timeout) * time.Second,
	})
	publisher := events.NewPublisher(events.Config{
		Enabled:      cfg.Kafka.Enabled,
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		BatchTimeout: time.Duration(cfg.Kafka.BatchTimeoutMS) * time.Millisecond,
	}, log)
	log.Info("Integration clients initialized (ListingService=%s, email=%t, sms=%t, kafka=%t)",
		cfg.ListingService.URL, emailClient.Configured(), smsClient.Configured(), publisher.Configured())

	// Диспетчер уведомлений
	dispatcher := notification.NewDispatcher(
		notification.Config{
			Workers:   cfg.Booking.NotificationWorkers,
			QueueSize: cfg.Booking.NotificationQueueSize,
			Timeout:   time.Duration(cfg.Booking.NotificationTimeout) * time.Second,
		},
		[]notification.Channel{
			notification.NewEmailChannel(emailClient),
			notification.NewSMSChannel(smsClient),
			notification.NewEventsChannel(publisher),
		},
		listingClient,
		metricsCollector,
		log,
	)

	// Сервисы
	availabilitySvc := availability.NewService(bookingRepository)
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		availabilitySvc,
		listingClient,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Use cases
	var bookingOpts []createBookingUC.Option
	if cfg.Booking.RejectPast {
		bookingOpts = append(bookingOpts, createBookingUC.WithPastRejection())
	}
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		listingClient,
		txMgr,
		dispatcher,
		metricsCollector,
		log,
		bookingOpts...,
	)

	// Handlers
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	cancelSlotBookings := cancelSlotBookingsHandler.NewHandler(bookingSvc, log)
	getSlotBookings := getSlotBookingsHandler.NewHandler(bookingSvc, log)
	getCarBookings := getCarBookingsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// Запись на осмотр доступна без входа
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-ID обязателен, роль проверяется в сервисах)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/slots/{slotId}/cancel-bookings", cancelSlotBookings.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}/bookings", getSlotBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/cars/{carId}/bookings", getCarBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Новые бронирования больше не приходят, дорассылаем очередь
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("Notification queue not drained: %v", err)
	}
	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
