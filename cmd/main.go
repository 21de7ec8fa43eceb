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

	cancelReservationHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/check_availability"
	createManualReservationHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/create_manual_reservation"
	createReservationHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/create_reservation"
	getCalendarHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/get_calendar"
	getGuestReservationsHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/get_guest_reservations"
	getListingReservationsHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/get_listing_reservations"
	getReservationHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/get_reservation"
	updateCalendarHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/update_calendar"
	updateReservationStatusHandler "github.com/kaancelik05/swimago-api-sub000/internal/api/handlers/update_reservation_status"
	"github.com/kaancelik05/swimago-api-sub000/internal/api/middleware"
	"github.com/kaancelik05/swimago-api-sub000/internal/config"
	calendarRepo "github.com/kaancelik05/swimago-api-sub000/internal/infra/storage/calendar"
	reservationRepo "github.com/kaancelik05/swimago-api-sub000/internal/infra/storage/reservation"
	guestServiceClient "github.com/kaancelik05/swimago-api-sub000/internal/integrations/guestservice"
	venueServiceClient "github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
	calendarService "github.com/kaancelik05/swimago-api-sub000/internal/service/calendar"
	"github.com/kaancelik05/swimago-api-sub000/internal/service/pricing"
	reservationsService "github.com/kaancelik05/swimago-api-sub000/internal/service/reservations"
	checkAvailabilityUC "github.com/kaancelik05/swimago-api-sub000/internal/usecase/check_availability"
	createManualReservationUC "github.com/kaancelik05/swimago-api-sub000/internal/usecase/create_manual_reservation"
	createReservationUC "github.com/kaancelik05/swimago-api-sub000/internal/usecase/create_reservation"
	"github.com/kaancelik05/swimago-api-sub000/pkg/dbmetrics"
	"github.com/kaancelik05/swimago-api-sub000/pkg/logger"
	"github.com/kaancelik05/swimago-api-sub000/pkg/metrics"
	"github.com/kaancelik05/swimago-api-sub000/pkg/simpletxmanager"
	"github.com/kaancelik05/swimago-api-sub000/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting Swimago Reservation Service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Инициализируем интеграционных клиентов
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	guestClient := guestServiceClient.NewClient(
		cfg.GuestService.URL,
		time.Duration(cfg.GuestService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s timeout=%ds, GuestService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout, cfg.GuestService.URL, cfg.GuestService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		calendarRepository    *calendarRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем калькулятор стоимости
	pricingPolicy, err := pricing.ParsePolicy(cfg.Booking.PricingPolicy)
	if err != nil {
		log.Fatal("Invalid pricing policy in config: %v", err)
	}
	priceCalculator := pricing.NewCalculator(pricingPolicy, cfg.Booking.GuestCountMultiplier)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		venueClient,
		log,
	)
	calendarSvc := calendarService.NewService(
		calendarRepository,
		reservationRepository,
		venueClient,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		calendarRepository,
		venueClient,
		priceCalculator,
		txMgr,
		log,
		cfg.Booking.GraceMinutes,
		cfg.Booking.ConfirmationInsertTries,
	)

	createManualReservationUseCase := createManualReservationUC.NewUseCase(
		reservationRepository,
		calendarRepository,
		venueClient,
		guestClient,
		priceCalculator,
		txMgr,
		log,
		cfg.Booking.GraceMinutes,
		cfg.Booking.ConfirmationInsertTries,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		calendarRepository,
		venueClient,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	createManualReservation := createManualReservationHandler.NewHandler(createManualReservationUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getGuestReservations := getGuestReservationsHandler.NewHandler(reservationSvc, log)
	getListingReservations := getListingReservationsHandler.NewHandler(reservationSvc, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	updateCalendar := updateCalendarHandler.NewHandler(calendarSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности интервала
	api.HandleFunc("/venues/{listingId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Календарь площадки за месяц
	api.HandleFunc("/venues/{listingId}/calendar",
		getCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (онлайн-сценарий)
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (для владельцев площадок)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований гостя
	protected.HandleFunc("/guests/{userId}/reservations", getGuestReservations.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Ручное бронирование (телефон, walk-in)
	protected.HandleFunc("/venues/{listingId}/manual-reservations",
		createManualReservation.Handle).Methods(http.MethodPost)

	// Список бронирований площадки
	protected.HandleFunc("/venues/{listingId}/reservations",
		getListingReservations.Handle).Methods(http.MethodGet)

	// Обновление календаря площадки
	protected.HandleFunc("/venues/{listingId}/calendar",
		updateCalendar.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
