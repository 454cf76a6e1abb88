package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/avstrong/stayquote/internal/booking"
	"github.com/avstrong/stayquote/internal/config"
	"github.com/avstrong/stayquote/internal/idgen/uuidgen"
	"github.com/avstrong/stayquote/internal/logger"
	"github.com/avstrong/stayquote/internal/migration"
	"github.com/avstrong/stayquote/internal/scheduler"
	"github.com/avstrong/stayquote/internal/storage/memory"
	"github.com/avstrong/stayquote/internal/transport/web"
)

//nolint:funlen
func Run(cfg *config.Config, l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	storage := memory.New(memory.Config{L: l, Pricing: cfg.PricingSnapshot()})
	if err := migration.Up(ctx, l, storage); err != nil {
		return fmt.Errorf("up room catalog migration: %w", err)
	}

	l.LogInfo("Room catalog migration has been applied")

	bookManager := booking.New(l, storage, uuidgen.New(), cfg.BookingLimits())

	var sched *scheduler.Scheduler

	if cfg.Scheduler.Enabled {
		var err error

		//nolint:exhaustruct
		sched, err = scheduler.New(scheduler.Conf{L: l, CompleteStays: cfg.Scheduler.CompleteStays}, bookManager)
		if err != nil {
			return fmt.Errorf("init scheduler: %w", err)
		}

		sched.Start()
	}

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      slog.NewLogLogger(l.Slog().Handler(), slog.LevelError),
		Host:              cfg.HTTP.Host,
		Port:              strconv.Itoa(cfg.HTTP.Port),
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadHeaderTimeoutSeconds) * time.Second,
		LivenessEndpoint:  cfg.HTTP.LivenessEndpoint,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
	}

	srv, err := web.New(ctx, webConf, bookManager)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	shutdownTimeout := time.Duration(cfg.HTTP.ShutdownTimeoutSeconds) * time.Second
	stopped := make(chan struct{})

	//nolint:contextcheck
	go func() {
		defer close(stopped)

		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}

		if sched != nil {
			sched.Stop(ctx)
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	var listenErr error

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		l.LogErrorf("Failed to run http server: %v", err.Error())

		listenErr = fmt.Errorf("run http server: %w", err)

		cancel()
	}

	<-stopped

	if listenErr != nil {
		return listenErr
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
