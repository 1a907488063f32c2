package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"medbook/config"
	"medbook/internal/calendar"
	"medbook/internal/repository"
	"medbook/internal/service"
	"medbook/internal/transport/rest"
	"medbook/pkg/database"
	"medbook/pkg/logger"
)

// @title MedBook Availability API
// @version 1.0
// @description API выдачи доступных слотов и резервации времени у экспертов

// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	repos := repository.NewRepositories(db)

	var calendarSource calendar.Source
	if cfg.Google.ClientID != "" {
		calendarSource = calendar.NewGoogleSource(cfg.Google, repos.CalendarToken, log)
		log.Info("Интеграция с Google Calendar включена")
	} else {
		log.Warn("Интеграция с календарями не настроена, занятость внешних календарей не учитывается")
		calendarSource = calendar.NewNoopSource()
	}

	services := service.NewServices(service.Deps{
		Repos:    repos,
		Calendar: calendarSource,
		Logger:   log,
		Config:   cfg,
	})

	janitorCron := cron.New()
	_, err = janitorCron.AddFunc("@every "+cfg.Janitor.Interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := services.Janitor.SweepReservations(ctx); err != nil {
			log.Error("Ошибка чистки резерваций", zap.Error(err))
		}
		if _, err := services.Janitor.SweepBlockedDates(ctx); err != nil {
			log.Error("Ошибка чистки заблокированных дат", zap.Error(err))
		}
	})
	if err != nil {
		log.Fatal("Не удалось запланировать чистку", zap.Error(err))
	}
	janitorCron.Start()

	handler := rest.NewHandler(services, log, cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	cronCtx := janitorCron.Stop()
	<-cronCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Ошибка при остановке сервера", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}
