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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addressesHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/addresses"
	confirmRequestHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/confirm_request"
	doctorDashboardHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/doctor_dashboard"
	getBookingsHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/get_bookings"
	getDoctorsHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/get_doctors"
	getPendingRequestsHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/get_pending_requests"
	getRequestAddressHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/get_request_address"
	refreshBookingsHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/refresh_bookings"
	rejectRequestHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/reject_request"
	sessionHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/session"
	wizardHandler "github.com/m04kA/SMC-BookingClient/internal/api/handlers/wizard"
	"github.com/m04kA/SMC-BookingClient/internal/api/middleware"
	"github.com/m04kA/SMC-BookingClient/internal/config"
	identityStorage "github.com/m04kA/SMC-BookingClient/internal/infra/storage/identity"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/realtime"
	addressService "github.com/m04kA/SMC-BookingClient/internal/service/addresses"
	"github.com/m04kA/SMC-BookingClient/internal/service/reconciliation"
	"github.com/m04kA/SMC-BookingClient/internal/session"
	doctorDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/doctor_dashboard"
	patientDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/patient_dashboard"
	pendingRequests "github.com/m04kA/SMC-BookingClient/internal/usecase/pending_requests"
	"github.com/m04kA/SMC-BookingClient/pkg/logger"
	"github.com/m04kA/SMC-BookingClient/pkg/metrics"
)

// mountTimeout ограничивает первичную загрузку дашбордов при смене личности
const mountTimeout = 20 * time.Second

func main() {
	// .env необязателен, переменные окружения могут быть заданы снаружи
	_ = godotenv.Load()

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

	log.Info("Starting SMC-BookingClient...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены); методы nil-коллектора ничего не делают
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище личности
	store, closeStore, err := openSessionStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to open session store: %v", err)
	}
	defer closeStore()

	sessionCtx := session.NewContext(store, log)

	// Интеграции
	apiClient := bookingapi.NewClient(
		cfg.API.URL,
		cfg.APITimeout(),
		sessionCtx,
		log,
		bookingapi.WithRateLimit(cfg.API.RateLimitRPS, cfg.API.RateLimitBurst),
		bookingapi.WithMetrics(metricsCollector),
	)
	hub := realtime.NewHub(
		cfg.Realtime.URL,
		sessionCtx,
		log,
		realtime.WithReconnectDelay(cfg.ReconnectDelay()),
		realtime.WithMetrics(metricsCollector),
	)
	log.Info("Integration clients initialized (API=%s timeout=%ds, WS=%s)",
		cfg.API.URL, cfg.API.Timeout, cfg.Realtime.URL)

	// Хранилище согласования бронирований
	bookingStore := reconciliation.NewStore(log)
	bookingStore.OnChange(func() {
		metricsCollector.SetStoreBookings(bookingStore.Len())
	})

	// Дашборды
	patient := patientDashboard.NewController(apiClient, hub, bookingStore, sessionCtx, metricsCollector, log)
	doctor := doctorDashboard.NewController(apiClient, hub, sessionCtx, log)
	pending := pendingRequests.NewController(apiClient, hub, sessionCtx, log)

	addresses := addressService.NewService(apiClient, sessionCtx, log)
	addresses.OnChange(func(ctx context.Context) {
		if err := patient.ReloadAddresses(ctx); err != nil {
			log.Warn("Address change: failed to reload wizard addresses: %v", err)
		}
	})

	// Смена личности перемонтирует дашборды под роль
	sessionCtx.OnChange(func(identity *session.Identity) {
		patient.Unmount()
		doctor.Unmount()
		pending.Unmount()

		if identity == nil {
			bookingStore.ReplaceAll(nil)
			log.Info("Session cleared, dashboards unmounted")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), mountTimeout)
		defer cancel()
		mountForRole(ctx, identity, patient, doctor, pending, log)
	})

	// Восстанавливаем личность из хранилища; ошибка хранилища не фатальна
	if err := sessionCtx.Restore(context.Background()); err != nil {
		log.Warn("Failed to restore session: %v", err)
	}

	// Инициализируем handlers
	sessionH := sessionHandler.NewHandler(sessionCtx, log)
	getBookings := getBookingsHandler.NewHandler(patient, log)
	refreshBookings := refreshBookingsHandler.NewHandler(patient, log)
	getDoctors := getDoctorsHandler.NewHandler(patient, log)
	wizard := wizardHandler.NewHandler(patient.Wizard(), patient, log)
	addressesH := addressesHandler.NewHandler(addresses, log)
	doctorH := doctorDashboardHandler.NewHandler(doctor, log)
	getPendingRequests := getPendingRequestsHandler.NewHandler(pending, log)
	confirmRequest := confirmRequestHandler.NewHandler(pending, log)
	rejectRequest := rejectRequestHandler.NewHandler(pending, log)
	getRequestAddress := getRequestAddressHandler.NewHandler(pending, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, log))

	// ============================================================
	// PUBLIC ROUTES (без личности)
	// ============================================================

	api.HandleFunc("/session", sessionH.Get).Methods(http.MethodGet)
	api.HandleFunc("/session", sessionH.Login).Methods(http.MethodPost)
	api.HandleFunc("/session", sessionH.Logout).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют вошедшую личность)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(sessionCtx))

	// --- Пациент ---
	protected.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/refresh", refreshBookings.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/doctors", getDoctors.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/specializations", getDoctors.Specializations).Methods(http.MethodGet)

	// Мастер бронирования
	protected.HandleFunc("/wizard", wizard.State).Methods(http.MethodGet)
	protected.HandleFunc("/wizard/open", wizard.Open).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/doctor", wizard.Doctor).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/date", wizard.Date).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/slot", wizard.Slot).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/details", wizard.Details).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/address", wizard.Address).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/next", wizard.Next).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/back", wizard.Back).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/cancel", wizard.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/submit", wizard.Submit).Methods(http.MethodPost)

	// Адреса
	protected.HandleFunc("/addresses", addressesH.List).Methods(http.MethodGet)
	protected.HandleFunc("/addresses", addressesH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/addresses/{addressId}", addressesH.Update).Methods(http.MethodPut)
	protected.HandleFunc("/addresses/{addressId}", addressesH.Delete).Methods(http.MethodDelete)

	// --- Врач ---
	doctorRoutes := protected.PathPrefix("").Subrouter()
	doctorRoutes.Use(middleware.DoctorOnly())

	doctorRoutes.HandleFunc("/doctor/dashboard", doctorH.Get).Methods(http.MethodGet)
	doctorRoutes.HandleFunc("/doctor/dashboard", doctorH.Update).Methods(http.MethodPut)
	doctorRoutes.HandleFunc("/doctor/bookings/{bookingId}/payment-link", doctorH.PaymentLink).Methods(http.MethodPost)
	doctorRoutes.HandleFunc("/doctor/bookings/{bookingId}/complete", doctorH.Complete).Methods(http.MethodPost)
	doctorRoutes.HandleFunc("/doctor/patients/search", doctorH.SearchPatient).Methods(http.MethodGet)

	// Запросы на приём
	doctorRoutes.HandleFunc("/pending-requests", getPendingRequests.Handle).Methods(http.MethodGet)
	doctorRoutes.HandleFunc("/pending-requests/{requestId}/confirm", confirmRequest.Handle).Methods(http.MethodPost)
	doctorRoutes.HandleFunc("/pending-requests/{requestId}/reject", rejectRequest.Handle).Methods(http.MethodPost)
	doctorRoutes.HandleFunc("/pending-requests/{requestId}/addresses/{addressId}", getRequestAddress.Handle).Methods(http.MethodGet)

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
		log.Info("Starting local API on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	patient.Unmount()
	doctor.Unmount()
	pending.Unmount()
	hub.Close()

	log.Info("Agent stopped gracefully")
}

// mountForRole монтирует дашборды, соответствующие роли личности
func mountForRole(
	ctx context.Context,
	identity *session.Identity,
	patient *patientDashboard.Controller,
	doctor *doctorDashboard.Controller,
	pending *pendingRequests.Controller,
	log *logger.Logger,
) {
	if identity.User.IsDoctor() {
		if err := doctor.Mount(ctx); err != nil {
			log.Warn("Mount: doctor dashboard for user=%d: %v", identity.User.EffectiveID(), err)
		}
		if err := pending.Mount(ctx); err != nil {
			log.Warn("Mount: pending requests for user=%d: %v", identity.User.EffectiveID(), err)
		}
		return
	}

	if err := patient.Mount(ctx); err != nil {
		log.Warn("Mount: patient dashboard for user=%d: %v", identity.User.EffectiveID(), err)
	}
}

// openSessionStore выбирает хранилище личности по session.backend
func openSessionStore(cfg *config.Config, log *logger.Logger) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("Session store: redis (addr=%s, db=%d, profile=%s)", cfg.Redis.Addr, cfg.Redis.DB, cfg.Session.Profile)
		return identityStorage.NewRedisStore(client, cfg.Session.Profile, cfg.SessionTTL()), func() { _ = client.Close() }, nil

	case config.SessionBackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}

		store := identityStorage.NewPostgresStore(db, cfg.Session.Profile)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate identity table: %w", err)
		}
		log.Info("Session store: postgres (host=%s, port=%d, db=%s, profile=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Session.Profile)
		return store, func() { _ = db.Close() }, nil

	default:
		log.Info("Session store: file (%s)", cfg.Session.File)
		return identityStorage.NewFileStore(cfg.Session.File), func() {}, nil
	}
}
