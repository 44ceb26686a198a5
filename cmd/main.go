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
	goredis "github.com/redis/go-redis/v9"

	buildRosterHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/build_roster"
	checkConflictHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/check_conflict"
	checkSlotHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/check_slot"
	findSpecialistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/find_specialist"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getEarliestSlotHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_earliest_slot"
	optimizeAssignmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/optimize_assignments"
	reserveBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reserve_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	memoryCache "github.com/m04kA/SMC-SchedulingService/internal/infra/cache/memory"
	redisCache "github.com/m04kA/SMC-SchedulingService/internal/infra/cache/redis"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	preferenceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/preference"
	rosterRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/roster"
	catalogServiceClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scoring"
	buildRosterUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/build_roster"
	checkConflictUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflict"
	findSpecialistUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_specialist"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	optimizeAssignmentsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/optimize_assignments"
	reserveBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// slotCache объединяет контракты кеша всех use case
type slotCache interface {
	GetSlots(ctx context.Context, key string) ([]domain.TimeInterval, bool, error)
	SetSlots(ctx context.Context, key string, slots []domain.TimeInterval, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Инициализируем клиента CatalogService
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		preferenceRepository *preferenceRepo.Repository
		rosterRepository     *rosterRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		preferenceRepository = preferenceRepo.NewRepository(wrappedDB)
		rosterRepository = rosterRepo.NewRepository(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		preferenceRepository = preferenceRepo.NewRepository(db)
		rosterRepository = rosterRepo.NewRepository(db)
	}
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем кеш слотов
	var cache slotCache
	if cfg.Cache.Backend == "redis" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		cache = redisCache.New(redisClient, metricsCollector)
		log.Info("Slot cache backend: redis (%s)", cfg.Redis.Addr)
	} else {
		cache = memoryCache.New(metricsCollector)
		log.Info("Slot cache backend: memory")
	}
	cacheTTL := time.Duration(cfg.Cache.TTLMinutes) * time.Minute

	// Инициализируем сервис скоринга
	scoringCfg := scoring.DefaultConfig()
	if !cfg.Scoring.IsZero() {
		scoringCfg.WorkloadWeight = cfg.Scoring.WorkloadWeight
		scoringCfg.SkillWeight = cfg.Scoring.SkillWeight
		scoringCfg.PreferenceWeight = cfg.Scoring.PreferenceWeight
		scoringCfg.WaitTimeWeight = cfg.Scoring.WaitTimeWeight
		scoringCfg.PerformanceWeight = cfg.Scoring.PerformanceWeight
	}
	scorer, err := scoring.NewService(scoringCfg)
	if err != nil {
		log.Fatal("Failed to initialize scoring service: %v", err)
	}

	// Параметры построения расписаний: конфиг поверх значений по умолчанию
	rosterParams := buildRosterUC.DefaultParams()
	if cfg.Roster.HistoricalWeeks > 0 {
		rosterParams.HistoricalWeeks = cfg.Roster.HistoricalWeeks
	}
	if cfg.Roster.DemandDivisor > 0 {
		rosterParams.DemandDivisor = cfg.Roster.DemandDivisor
	}
	if cfg.Roster.MinStaffCoverage > 0 {
		rosterParams.MinStaffCoverage = cfg.Roster.MinStaffCoverage
	}
	if cfg.Roster.MinShiftHours > 0 {
		rosterParams.MinShiftHours = cfg.Roster.MinShiftHours
	}
	if cfg.Roster.MaxShiftHours > 0 {
		rosterParams.MaxShiftHours = cfg.Roster.MaxShiftHours
	}
	if cfg.Roster.DefaultMaxWeeklyHours > 0 {
		rosterParams.DefaultMaxWeeklyHours = cfg.Roster.DefaultMaxWeeklyHours
	}
	if cfg.Roster.PeakDemandPerHour > 0 {
		rosterParams.PeakDemandPerHour = cfg.Roster.PeakDemandPerHour
	}
	rosterParams.AllowSplitShifts = cfg.Roster.AllowSplitShifts

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogClient,
		cache,
		cacheTTL,
		log,
	)

	checkConflictUseCase := checkConflictUC.NewUseCase(bookingRepository, log)

	reserveBookingUseCase := reserveBookingUC.NewUseCase(
		bookingRepository,
		catalogClient,
		cache,
		txMgr,
		log,
	)

	findSpecialistUseCase := findSpecialistUC.NewUseCase(
		bookingRepository,
		preferenceRepository,
		catalogClient,
		scorer,
		log,
	)

	optimizeAssignmentsUseCase := optimizeAssignmentsUC.NewUseCase(
		bookingRepository,
		preferenceRepository,
		catalogClient,
		scorer,
		cache,
		log,
	)

	buildRosterUseCase, err := buildRosterUC.NewUseCase(
		bookingRepository,
		rosterRepository,
		catalogClient,
		txMgr,
		rosterParams,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize roster use case: %v", err)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getEarliestSlot := getEarliestSlotHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkConflict := checkConflictHandler.NewHandler(checkConflictUseCase, log)
	findSpecialist := findSpecialistHandler.NewHandler(findSpecialistUseCase, log)
	optimizeAssignments := optimizeAssignmentsHandler.NewHandler(optimizeAssignmentsUseCase, log)
	buildRoster := buildRosterHandler.NewHandler(buildRosterUseCase, log)
	reserveBooking := reserveBookingHandler.NewHandler(reserveBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/shops/{shopId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Ближайший доступный слот
	api.HandleFunc("/shops/{shopId}/earliest-slot",
		getEarliestSlot.Handle).Methods(http.MethodGet)

	// Проверка конкретного слота
	api.HandleFunc("/shops/{shopId}/slot-check",
		checkSlot.Handle).Methods(http.MethodGet)

	// Проверка конфликтов (одиночная и пакетная)
	api.HandleFunc("/conflicts/check", checkConflict.Handle).Methods(http.MethodPost)

	// Подбор мастера на слот
	api.HandleFunc("/shops/{shopId}/allocations/find",
		findSpecialist.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Резервирование слота
	protected.HandleFunc("/bookings/reserve", reserveBooking.Handle).Methods(http.MethodPost)

	// Перебалансировка назначений за день
	protected.HandleFunc("/shops/{shopId}/allocations/optimize",
		optimizeAssignments.Handle).Methods(http.MethodPost)

	// Построение расписания смен
	protected.HandleFunc("/shops/{shopId}/rosters",
		buildRoster.Handle).Methods(http.MethodPost)

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
