package app

import (
	"log/slog"

	httpapp "reportRelayBot/internal/app/http"
	"reportRelayBot/internal/service/report"
	tg_client "reportRelayBot/pkg/tg"
)

type App struct {
	HTTPServer *httpapp.App
}

func New(
	log *slog.Logger,
	httpConfig *httpapp.Config,
) *App {
	// клиент бота создается заново на каждый запрос: токен приходит
	// в теле запроса и между запросами может меняться
	reportService := report.New(log, func(token string) (report.Transport, error) {
		return tg_client.New(token)
	})

	httpApp := httpapp.New(
		log,
		httpConfig,
		reportService,
	)

	return &App{
		HTTPServer: httpApp,
	}
}
