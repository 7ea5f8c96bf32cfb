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
	"github.com/redis/go-redis/v9"

	createAppointmentHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/get_available_slots"
	getDayTimelineHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/get_day_timeline"
	healthHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/list_appointments"
	listOpeningHoursHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/list_opening_hours"
	listServicesHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/list_services"
	setOpeningHoursHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/set_opening_hours"
	updateAppointmentHandler "github.com/m04kA/SMC-RepairBookingService/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-RepairBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RepairBookingService/internal/config"
	"github.com/m04kA/SMC-RepairBookingService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/appointment"
	openingHoursRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/openinghours"
	serviceRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/service"
	userServiceClient "github.com/m04kA/SMC-RepairBookingService/internal/integrations/userservice"
	appointmentsService "github.com/m04kA/SMC-RepairBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/guard"
	shopService "github.com/m04kA/SMC-RepairBookingService/internal/service/shop"
	createAppointmentUC "github.com/m04kA/SMC-RepairBookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-RepairBookingService/internal/usecase/get_available_slots"
	getDayTimelineUC "github.com/m04kA/SMC-RepairBookingService/internal/usecase/get_day_timeline"
	updateAppointmentUC "github.com/m04kA/SMC-RepairBookingService/internal/usecase/update_appointment"
	updateOpeningHoursUC "github.com/m04kA/SMC-RepairBookingService/internal/usecase/update_opening_hours"
	"github.com/m04kA/SMC-RepairBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RepairBookingService/pkg/logger"
	"github.com/m04kA/SMC-RepairBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RepairBookingService/pkg/txmanager"
)

// dateLocker блокировка расписания по датам (Redis или no-op)
type dateLocker interface {
	WithDateLock(ctx context.Context, date time.Time, fn func(ctx context.Context) error) error
	WithDateLocks(ctx context.Context, dates []time.Time, fn func(ctx context.Context) error) error
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

	log.Info("Starting SMC-RepairBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены). nil-коллектор безопасен для всех вызовов.
	var metricsCollector *metrics.Metrics
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	readiness := map[string]healthHandler.Pinger{"postgres": wrappedDB}

	// Блокировка расписания по датам
	var locker dateLocker = lock.NoopLocker{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisLocker := lock.NewRedisDateLocker(
			redisClient,
			time.Duration(cfg.Redis.LockTTL)*time.Second,
			time.Duration(cfg.Redis.LockWait)*time.Millisecond,
		)
		if err := redisLocker.PingContext(context.Background()); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		locker = redisLocker
		readiness["redis"] = redisLocker
		log.Info("Redis date locks enabled (addr=%s, ttl=%ds, wait=%dms)",
			cfg.Redis.Addr, cfg.Redis.LockTTL, cfg.Redis.LockWait)
	} else {
		log.Warn("Redis disabled: schedule changes are serialized by the database only")
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	openingHoursRepository := openingHoursRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	scheduleGuard := guard.NewGuard(
		appointmentRepository,
		openingHoursRepository,
		metricsCollector,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		metricsCollector,
		log,
	)
	shopSvc := shopService.NewService(
		serviceRepository,
		openingHoursRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		openingHoursRepository,
		serviceRepository,
		log,
	)

	getDayTimelineUseCase := getDayTimelineUC.NewUseCase(
		appointmentRepository,
		openingHoursRepository,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		userClient,
		scheduleGuard,
		txMgr,
		locker,
		metricsCollector,
		log,
		cfg.Booking.RequireApproval,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		scheduleGuard,
		txMgr,
		locker,
		metricsCollector,
		log,
	)

	updateOpeningHoursUseCase := updateOpeningHoursUC.NewUseCase(
		openingHoursRepository,
		scheduleGuard,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getDayTimeline := getDayTimelineHandler.NewHandler(getDayTimelineUseCase, log)
	listServices := listServicesHandler.NewHandler(shopSvc, log)
	listOpeningHours := listOpeningHoursHandler.NewHandler(shopSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	setOpeningHours := setOpeningHoursHandler.NewHandler(updateOpeningHoursUseCase, log)
	health := healthHandler.NewHandler(readiness, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health checks
	r.HandleFunc("/health/live", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты под услугу на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание дня (свободные 30-минутные слоты и занятые интервалы)
	api.HandleFunc("/timeline", getDayTimeline.Handle).Methods(http.MethodGet)

	// Каталог услуг и рабочие часы
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/opening-hours", listOpeningHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Рабочие часы (для персонала) ---
	protected.HandleFunc("/opening-hours/{weekday}", setOpeningHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/opening-hours/{weekday}", setOpeningHours.HandleDelete).Methods(http.MethodDelete)

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
