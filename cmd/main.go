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
	"github.com/robfig/cron/v3"

	cancelBookingHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/cancel_booking"
	checkBookingLimitHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/check_booking_limit"
	createBookingHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/create_booking"
	deleteEventHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/delete_event"
	generateSlotsHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/get_booking"
	getCompanyBookingsHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/get_company_bookings"
	getStudentBookingsHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/get_student_bookings"
	setPhaseHandler "github.com/avykhr/CareerDay-BookingService/internal/api/handlers/set_phase"
	"github.com/avykhr/CareerDay-BookingService/internal/api/middleware"
	"github.com/avykhr/CareerDay-BookingService/internal/config"
	attemptRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/attempt"
	bookingRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/booking"
	eventRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/event"
	slotRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/slot"
	studentRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/student"
	studentServiceClient "github.com/avykhr/CareerDay-BookingService/internal/integrations/studentservice"
	bookingsService "github.com/avykhr/CareerDay-BookingService/internal/service/bookings"
	phasesService "github.com/avykhr/CareerDay-BookingService/internal/service/phases"
	checkBookingLimitUC "github.com/avykhr/CareerDay-BookingService/internal/usecase/check_booking_limit"
	createBookingUC "github.com/avykhr/CareerDay-BookingService/internal/usecase/create_booking"
	deleteEventUC "github.com/avykhr/CareerDay-BookingService/internal/usecase/delete_event"
	generateSlotsUC "github.com/avykhr/CareerDay-BookingService/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/avykhr/CareerDay-BookingService/internal/usecase/get_available_slots"
	"github.com/avykhr/CareerDay-BookingService/pkg/logger"
	"github.com/avykhr/CareerDay-BookingService/pkg/metrics"
	"github.com/avykhr/CareerDay-BookingService/pkg/ratelimit"
	"github.com/avykhr/CareerDay-BookingService/pkg/txmanager"
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

	log.Info("Starting CareerDay-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем интеграционного клиента StudentService
	studentClient := studentServiceClient.NewClient(
		cfg.StudentService.URL,
		time.Duration(cfg.StudentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StudentService=%s timeout=%ds)",
		cfg.StudentService.URL, cfg.StudentService.Timeout)

	// Инициализируем репозитории
	eventRepository := eventRepo.NewRepository(db)
	slotRepository := slotRepo.NewRepository(db)
	bookingRepository := bookingRepo.NewRepository(db)
	studentRepository := studentRepo.NewRepository(db)
	attemptRepository := attemptRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Типизированный nil в интерфейсе не считается nil, поэтому
	// присваиваем коллектор только когда метрики включены
	var phaseMetrics phasesService.Metrics
	var bookingMetrics createBookingUC.Metrics
	if metricsCollector != nil {
		phaseMetrics = metricsCollector
		bookingMetrics = metricsCollector
	}

	// Инициализируем сервисы
	phasesSvc := phasesService.NewService(eventRepository, txMgr, phaseMetrics, log)
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, studentClient, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		eventRepository,
		slotRepository,
		studentRepository,
		bookingRepository,
		attemptRepository,
		phasesSvc,
		txMgr,
		bookingMetrics,
		log,
	)
	checkBookingLimitUseCase := checkBookingLimitUC.NewUseCase(
		eventRepository,
		studentRepository,
		bookingRepository,
		phasesSvc,
		txMgr,
		log,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		eventRepository,
		slotRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		eventRepository,
		slotRepository,
		log,
	)
	deleteEventUseCase := deleteEventUC.NewUseCase(
		eventRepository,
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkBookingLimit := checkBookingLimitHandler.NewHandler(checkBookingLimitUseCase, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	deleteEvent := deleteEventHandler.NewHandler(deleteEventUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getStudentBookings := getStudentBookingsHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)
	setPhase := setPhaseHandler.NewHandler(phasesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты компании на событии
	api.HandleFunc("/events/{eventId}/companies/{companyId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Доступные слоты вакансии
	api.HandleFunc("/offers/{offerId}/available-slots",
		getAvailableSlots.HandleByOffer).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	if cfg.RateLimit.Enabled {
		limiter := ratelimit.New(
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			cfg.RateLimit.MaxAttempts,
		)
		protected.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiter enabled (window=%ds, max=%d)",
			cfg.RateLimit.WindowSeconds, cfg.RateLimit.MaxAttempts)
	}

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований студента
	protected.HandleFunc("/students/{studentId}/bookings", getStudentBookings.Handle).Methods(http.MethodGet)

	// Остаток лимита бронирований в текущей фазе
	protected.HandleFunc("/events/{eventId}/booking-limit", checkBookingLimit.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly)

	// Генерация сетки слотов события
	admin.HandleFunc("/events/{eventId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Ручное управление фазой события
	admin.HandleFunc("/events/{eventId}/phase", setPhase.Handle).Methods(http.MethodPatch)

	// Бронирования компании на событии
	admin.HandleFunc("/events/{eventId}/companies/{companyId}/bookings",
		getCompanyBookings.Handle).Methods(http.MethodGet)

	// Полное удаление события
	admin.HandleFunc("/events/{eventId}", deleteEvent.Handle).Methods(http.MethodDelete)

	// Планировщик автоматических переходов фаз
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Phases.AdvanceCron, func() {
		advanced, err := phasesSvc.AdvanceDue(context.Background())
		if err != nil {
			log.Error("Phase advance job failed: %v", err)
			return
		}
		if advanced > 0 {
			log.Info("Phase advance job: %d event(s) advanced", advanced)
		}
	}); err != nil {
		log.Fatal("Failed to schedule phase advance job: %v", err)
	}
	scheduler.Start()
	log.Info("Phase advance scheduler started (cron=%q)", cfg.Phases.AdvanceCron)

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

	// Останавливаем планировщик, дожидаемся текущего прогона
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
