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
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-CaptureBooking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-CaptureBooking/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-CaptureBooking/internal/api/handlers/get_appointment"
	getBookedDatesHandler "github.com/m04kA/SMC-CaptureBooking/internal/api/handlers/get_booked_dates"
	getDayAvailabilityHandler "github.com/m04kA/SMC-CaptureBooking/internal/api/handlers/get_day_availability"
	listAppointmentsHandler "github.com/m04kA/SMC-CaptureBooking/internal/api/handlers/list_appointments"
	"github.com/m04kA/SMC-CaptureBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CaptureBooking/internal/availability"
	"github.com/m04kA/SMC-CaptureBooking/internal/config"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CaptureBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-CaptureBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CaptureBooking/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-CaptureBooking/internal/integrations/events"
	"github.com/m04kA/SMC-CaptureBooking/internal/ledger"
	appointmentsService "github.com/m04kA/SMC-CaptureBooking/internal/service/appointments"
	createBookingUC "github.com/m04kA/SMC-CaptureBooking/internal/usecase/create_booking"
	getDayAvailabilityUC "github.com/m04kA/SMC-CaptureBooking/internal/usecase/get_day_availability"
	"github.com/m04kA/SMC-CaptureBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CaptureBooking/pkg/logger"
	"github.com/m04kA/SMC-CaptureBooking/pkg/metrics"
	"github.com/m04kA/SMC-CaptureBooking/pkg/txmanager"
)

// eventPublisher общий интерфейс Kafka и Noop публикаторов
type eventPublisher interface {
	AppointmentCreated(ctx context.Context, a *domain.Appointment) error
	AppointmentCancelled(ctx context.Context, a *domain.Appointment) error
	Close() error
}

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

	log.Info("Starting SMC-CaptureBooking...")
	log.Info("Configuration loaded from config.toml (ledger=%s, timezone=%s)",
		cfg.Ledger.Backend, cfg.Business.Timezone)

	loc, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Business.Timezone, err)
	}
	policy := availability.NewPolicy(loc)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище записей
	var (
		repo      ledger.Repository
		txManager ledger.TransactionManager
	)

	switch cfg.Ledger.Backend {
	case config.LedgerBackendMemory:
		repo = memory.NewRepository(policy, time.Now)
		txManager = memory.TransactionManager{}
		log.Warn("Using in-memory ledger: appointments are lost on restart")

	default:
		db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(pingCtx)
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (driver=%s, host=%s, port=%d, db=%s)",
			cfg.Database.Driver, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// С выключенными метриками обёртка не собирает статистику
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		tm := txmanager.NewTransactionManager(wrappedDB)

		if cfg.Database.AutoMigrate {
			if err := migrations.Apply(context.Background(), wrappedDB, tm, log); err != nil {
				log.Fatal("Failed to apply migrations: %v", err)
			}
		}

		repo = appointmentRepo.NewRepository(wrappedDB, cfg.Business.Timezone)
		txManager = tm
	}

	// Доменные события
	var publisher eventPublisher = events.Noop{}
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(events.Config{
			Brokers:      cfg.Events.Brokers,
			Topic:        cfg.Events.Topic,
			WriteTimeout: time.Duration(cfg.Events.WriteTimeout) * time.Second,
		}, log)
		log.Info("Publishing appointment events to topic=%s brokers=%v", cfg.Events.Topic, cfg.Events.Brokers)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Ledger, сервисы и use cases
	appointmentsLedger := ledger.NewLedger(repo, txManager, policy, log)

	appointmentsSvc := appointmentsService.NewService(appointmentsLedger, publisher, metricsCollector, log)
	createBookingUseCase := createBookingUC.NewUseCase(appointmentsLedger, policy, publisher, metricsCollector, log)
	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(appointmentsLedger, policy, log)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createBookingUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, log)
	getBookedDates := getBookedDatesHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/availability", getDayAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booked-dates", getBookedDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
