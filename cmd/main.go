package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"vidtube/config"
	_ "vidtube/docs"
	"vidtube/internal/handler"
	"vidtube/internal/metrics"
	"vidtube/internal/ports"
	"vidtube/internal/repository"
	"vidtube/internal/security"
	"vidtube/internal/service"
)

// @title VidTube
// @version 1.0
// @description REST API регистрации, входа и сессий пользователей

// @host localhost:8000

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.Any("error", err))
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("запуск vidtube", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

	userRepo, closeUsers, err := setupUserRepository(ctx, cfg)
	if err != nil {
		logger.Error("Не удалось подготовить хранилище пользователей", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeUsers()

	teaRepo, closeTeas, err := setupTeaRepository(cfg)
	if err != nil {
		logger.Error("Не удалось подготовить хранилище чая", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeTeas()

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		logger.Error("Ошибка создания S3 сервиса", slog.Any("error", err))
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Upload.TempDir, 0o755); err != nil {
		logger.Error("Не удалось создать каталог для загрузок", slog.Any("error", err))
		os.Exit(1)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	passwordHasher := security.NewPasswordHasher(&cfg.Password)

	sessionService := service.NewSessionService(userRepo, passwordHasher, jwtService, s3Service)
	teaService := service.NewTeaService(teaRepo)

	handlers := handler.Handlers{
		Auth:  handler.NewAuthenticationHandler(sessionService, cfg.IsProduction(), cfg.Server.JSONBodyLimit),
		Users: handler.NewUserHandler(sessionService, &cfg.Upload, cfg.Server.JSONBodyLimit),
		Teas:  handler.NewTeaHandler(teaService, cfg.Server.JSONBodyLimit),
		Gate:  security.JWTMiddleware(jwtService, userRepo),
	}

	srv, router := config.SetupServer(cfg.Server.Addr())
	setupMiddleware(router, logger, cfg)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	handler.SetupRoutes(router, handlers)

	runServer(ctx, srv)
}

func setupMiddleware(r chi.Router, logger *slog.Logger, cfg *config.AppConfig) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupUserRepository : выбирает хранилище пользователей по storage.driver
func setupUserRepository(ctx context.Context, cfg *config.AppConfig) (ports.UserRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				slog.Error("Ошибка при закрытии БД", slog.Any("error", err))
			}
		}
		return repository.NewUserRepository(db), closeFn, nil

	case config.StorageDriverMongo:
		connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
		defer connectCancel()

		mongoDB, err := config.SetupMongo(connectCtx, &cfg.MongoConfig)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repository.NewUserMongoRepository(connectCtx, mongoDB)
		if err != nil {
			_ = mongoDB.Close(context.Background())
			return nil, nil, err
		}
		closeFn := func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			if err := mongoDB.Close(closeCtx); err != nil {
				slog.Error("Ошибка при закрытии MongoDB", slog.Any("error", err))
			}
		}
		return repo, closeFn, nil

	case config.StorageDriverMemory:
		slog.Warn("пользователи хранятся в памяти и пропадут после перезапуска")
		return repository.NewUserMemoryRepository(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("неизвестный storage.driver: %q", cfg.Storage.Driver)
}

func setupTeaRepository(cfg *config.AppConfig) (ports.TeaRepository, func(), error) {
	if cfg.Tea.Driver != config.TeaDriverRedis {
		return repository.NewTeaMemoryRepository(), func() {}, nil
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Ошибка при закрытии Redis", slog.Any("error", err))
		}
	}
	return repository.NewTeaRedisRepository(redisClient), closeFn, nil
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("сервер запущен", slog.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ошибка работы сервера", slog.Any("error", err))
			return
		}
	case sig := <-signalChannel:
		slog.Info("получен сигнал остановки работы сервера", slog.String("signal", sig.String()))
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		slog.Error("ошибка при остановке сервера", slog.Any("error", err))
	} else {
		slog.Info("Сервер успешно остановлен")
	}
}
