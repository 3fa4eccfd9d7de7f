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

	advanceStatusesHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/advance_statuses"
	cancelBookingHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/cancel_booking"
	cancelRecurringHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/cancel_recurring_booking"
	createAdditionHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/create_availability_addition"
	createRuleHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/create_availability_rule"
	createBlockHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/create_blocked_slot"
	createBookingHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/create_booking"
	createRecurringHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/create_recurring_booking"
	deleteAdditionHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/delete_availability_addition"
	deleteRuleHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/delete_availability_rule"
	deleteBlockHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/delete_blocked_slot"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/get_booking"
	getCoachSessionsHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/get_coach_sessions"
	getMemberBookingsHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/get_member_bookings"
	getRecurringHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/get_recurring_booking"
	listRulesHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/list_availability_rules"
	rescheduleSessionHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/reschedule_session"
	runMaterializationHandler "github.com/m04kA/SMC-CoachScheduler/internal/api/handlers/run_materialization"
	"github.com/m04kA/SMC-CoachScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-CoachScheduler/internal/config"
	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/booking"
	directoryRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/directory"
	recurringRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/recurring"
	sessionRepo "github.com/m04kA/SMC-CoachScheduler/internal/infra/storage/session"
	"github.com/m04kA/SMC-CoachScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-CoachScheduler/internal/jobs"
	availabilityService "github.com/m04kA/SMC-CoachScheduler/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CoachScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-CoachScheduler/internal/service/conflictguard"
	recurringService "github.com/m04kA/SMC-CoachScheduler/internal/service/recurring"
	advanceStatusesUC "github.com/m04kA/SMC-CoachScheduler/internal/usecase/advance_statuses"
	cancelRecurringUC "github.com/m04kA/SMC-CoachScheduler/internal/usecase/cancel_recurring_booking"
	createBookingUC "github.com/m04kA/SMC-CoachScheduler/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CoachScheduler/internal/usecase/get_available_slots"
	materializeSessionsUC "github.com/m04kA/SMC-CoachScheduler/internal/usecase/materialize_sessions"
	"github.com/m04kA/SMC-CoachScheduler/migrations"
	"github.com/m04kA/SMC-CoachScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/logger"
	"github.com/m04kA/SMC-CoachScheduler/pkg/metrics"
	"github.com/m04kA/SMC-CoachScheduler/pkg/txmanager"
)

const configPath = "config.toml"

// eventPublisher общий контракт NATS и no-op публикаторов
type eventPublisher interface {
	PublishSessionReserved(ctx context.Context, event events.SessionReserved) error
	PublishSessionCancelled(ctx context.Context, event events.SessionCancelled) error
	PublishSessionsMaterialized(ctx context.Context, event events.SessionsMaterialized) error
	PublishRecurringBookingCancelled(ctx context.Context, event events.RecurringBookingCancelled) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	// migrate up|down|status: применяем миграции и выходим
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		command := "up"
		if len(os.Args) > 2 {
			command = os.Args[2]
		}
		if err := migrations.Run(context.Background(), db, command); err != nil {
			log.Fatal("Migration %s failed: %v", command, err)
		}
		log.Info("Migration %s finished", command)
		return
	}

	log.Info("Starting SMC-CoachScheduler...")
	log.Info("Configuration loaded from %s, studio timezone=%s", configPath, cfg.Schedule.Timezone)

	location := cfg.Schedule.Location()

	// Инициализируем метрики (если включены). nil коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	if cfg.Metrics.Enabled {
		wrappedDB.CollectPoolStats(15*time.Second, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Публикация доменных событий
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		natsPublisher, err := events.NewNatsPublisher(cfg.Events.NatsURL, cfg.Events.SubjectPrefix, cfg.Metrics.ServiceName, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		publisher = natsPublisher
		log.Info("Domain events enabled (nats=%s, prefix=%s)", cfg.Events.NatsURL, cfg.Events.SubjectPrefix)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	sessionRepository := sessionRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	recurringRepository := recurringRepo.NewRepository(wrappedDB)
	directoryRepository := directoryRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	guard := conflictguard.NewService(
		sessionRepository,
		directoryRepository,
		txMgr,
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		sessionRepository,
		guard,
		publisher,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		directoryRepository,
		log,
	)
	recurringSvc := recurringService.NewService(
		recurringRepository,
		directoryRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		bookingRepository,
		directoryRepository,
		location,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		bookingRepository,
		guard,
		publisher,
		txMgr,
		location,
		log,
	)
	materializeUseCase := materializeSessionsUC.NewUseCase(
		recurringRepository,
		availabilityRepository,
		sessionRepository,
		bookingRepository,
		guard,
		metricsCollector,
		publisher,
		txMgr,
		location,
		cfg.Schedule.DefaultHorizonWeeks,
		log,
	)
	cancelRecurringUseCase := cancelRecurringUC.NewUseCase(
		recurringRepository,
		sessionRepository,
		bookingRepository,
		publisher,
		txMgr,
		log,
	)
	advanceStatusesUseCase := advanceStatusesUC.NewUseCase(
		sessionRepository,
		availabilitySvc,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getMemberBookings := getMemberBookingsHandler.NewHandler(bookingSvc, log)
	getCoachSessions := getCoachSessionsHandler.NewHandler(bookingSvc, location, log)
	rescheduleSession := rescheduleSessionHandler.NewHandler(bookingSvc, log)
	createRecurring := createRecurringHandler.NewHandler(recurringSvc, log)
	getRecurring := getRecurringHandler.NewHandler(recurringSvc, log)
	cancelRecurring := cancelRecurringHandler.NewHandler(cancelRecurringUseCase, log)
	listRules := listRulesHandler.NewHandler(availabilitySvc, log)
	createRule := createRuleHandler.NewHandler(availabilitySvc, log)
	deleteRule := deleteRuleHandler.NewHandler(availabilitySvc, log)
	createBlock := createBlockHandler.NewHandler(availabilitySvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(availabilitySvc, log)
	createAddition := createAdditionHandler.NewHandler(availabilitySvc, log)
	deleteAddition := deleteAdditionHandler.NewHandler(availabilitySvc, log)
	runMaterialization := runMaterializationHandler.NewHandler(materializeUseCase, log)
	advanceStatuses := advanceStatusesHandler.NewHandler(advanceStatusesUseCase, log)

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

	// ============================================================
	// JOB TRIGGERS (Bearer cron_secret или X-User-Role: admin)
	// ============================================================

	internalJobs := r.PathPrefix("/internal/jobs").Subrouter()
	internalJobs.Use(middleware.JobsAuth(cfg.Jobs.CronSecret))
	internalJobs.HandleFunc("/materialize", runMaterialization.Handle).Methods(http.MethodPost)
	internalJobs.HandleFunc("/advance-statuses", advanceStatuses.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты по тренерам за период
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельные правила тренера
	api.HandleFunc("/coaches/{coachId}/availability-rules", listRules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/members/{memberId}/bookings", getMemberBookings.Handle).Methods(http.MethodGet)

	// --- Регулярные записи ---
	protected.HandleFunc("/recurring-bookings", createRecurring.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/recurring-bookings/{recurringBookingId}", getRecurring.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/recurring-bookings/{recurringBookingId}/cancel", cancelRecurring.Handle).Methods(http.MethodPatch)

	// --- Управление расписанием (тренер или администратор) ---
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRole(domain.ActorCoach, domain.ActorAdmin))

	staff.HandleFunc("/sessions/{sessionId}/reschedule", rescheduleSession.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/coaches/{coachId}/sessions", getCoachSessions.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/coaches/{coachId}/availability-rules", createRule.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/coaches/{coachId}/availability-rules/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)
	staff.HandleFunc("/coaches/{coachId}/blocked-slots", createBlock.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/coaches/{coachId}/blocked-slots/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)
	staff.HandleFunc("/coaches/{coachId}/availability-additions", createAddition.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/coaches/{coachId}/availability-additions/{additionId}", deleteAddition.Handle).Methods(http.MethodDelete)

	// Периодические задачи внутри процесса (если включены)
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	if cfg.Jobs.AutoRun {
		runner := jobs.NewRunner(
			materializeUseCase,
			advanceStatusesUseCase,
			time.Duration(cfg.Jobs.Interval)*time.Second,
			log,
		)
		go runner.Run(jobsCtx)
	}

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

	stopJobs()

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
