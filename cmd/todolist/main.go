package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"todolist/internal/metrics"
	"todolist/internal/repository"
	"todolist/internal/server"
	"todolist/internal/service"
	"todolist/internal/session"
	"todolist/internal/util"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("TODOLIST_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("TODOLIST_DB_PATH", "data/todolist.db"), "Path to sqlite database file")
	staticFlag := flag.String("static", util.EnvOrDefault("TODOLIST_STATIC_DIR", "web/dist"), "Directory with frontend assets")
	redisFlag := flag.String("redis", util.EnvOrDefault("TODOLIST_REDIS_URL", ""), "Redis URL for session storage (empty: in-memory sessions)")
	ttlFlag := flag.Duration("session-ttl", util.EnvDurationOrDefault("TODOLIST_SESSION_TTL", 24*time.Hour), "Session lifetime")
	sweepFlag := flag.Duration("session-sweep", util.EnvDurationOrDefault("TODOLIST_SESSION_SWEEP", 5*time.Minute), "Interval between expired-session purges")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("ToDoList application starting")

	db, err := repository.NewDB(*dbFlag)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	userService := service.NewUserService(userRepo, logger)
	teamService := service.NewTeamService(teamRepo, userRepo, logger)
	taskService := service.NewTaskService(taskRepo, userRepo, logger)

	var store session.Store
	scheduler := cron.New()
	if *redisFlag != "" {
		redisStore, err := session.NewRedisStore(*redisFlag, *ttlFlag)
		if err != nil {
			logger.Error("unable to connect session store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info("sessions stored in redis")
	} else {
		memStore := session.NewMemoryStore(*ttlFlag)
		store = memStore
		if _, err := scheduler.AddFunc("@every "+sweepFlag.String(), func() {
			if purged := memStore.PurgeExpired(); purged > 0 {
				metrics.ObserveSessionsPurged(purged)
				logger.Info("purged expired sessions", slog.Int("count", purged))
			}
		}); err != nil {
			logger.Error("unable to schedule session purge", slog.String("error", err.Error()))
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("sessions stored in memory", slog.Duration("sweep", *sweepFlag))
	}

	sessions := session.NewManager(store, *ttlFlag)
	srv := server.New(userService, teamService, taskService, sessions, logger, *staticFlag)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	<-scheduler.Stop().Done()

	logger.Info("server stopped")
}
