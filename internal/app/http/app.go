package httpapp

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"reportRelayBot/internal/http/handler"
	"reportRelayBot/internal/pkg/logger/sl"
	"reportRelayBot/internal/service/report"
)

type Config struct {
	Port    int           `yaml:"port" env:"HTTP_PORT" env-default:"5001"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"60s"`
}

type App struct {
	log        *slog.Logger
	httpServer *http.Server
	port       int
}

func New(
	log *slog.Logger,
	config *Config,
	reportService *report.Service,
) *App {
	router := http.NewServeMux()

	router.HandleFunc(
		"POST /send-report",
		handler.SendReportHandler(log, reportService),
	)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(config.Port),
		Handler:      router,
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout,
	}

	return &App{log: log, httpServer: srv, port: config.Port}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "httpapp.Run"

	a.log.With(slog.String("op", op)).
		Info("server started", slog.Int("port", a.port))

	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		a.log.Error("failed to start http server", sl.Err(err))
		return err
	}

	return nil
}

func (a *App) Stop() {
	const op = "httpapp.Stop"

	a.log.With(slog.String("op", op)).
		Info("stopping HTTP server", slog.Int("port", a.port))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("server closed with err: %+v", sl.Err(err))
		os.Exit(1)
	}

	a.log.Info("Gracefully stopped")
}
