package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"reportRelayBot/internal/domain/models"
	"reportRelayBot/internal/pkg/logger/sl"
	"reportRelayBot/internal/service/report"
)

type SendReportRequest struct {
	BotToken    string         `json:"bot_token"`
	GroupID     string         `json:"group_id"`
	Type        string         `json:"type"`
	ReportID    any            `json:"report_id"`
	Author      string         `json:"author"`
	Location    string         `json:"location"`
	Date        string         `json:"date"`
	LateComment string         `json:"late_comment"`
	Data        map[string]any `json:"data"`
	OldData     map[string]any `json:"old_data"`
	Settings    models.Layout  `json:"settings"`
}

type SendReportResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func SendReportHandler(
	log *slog.Logger,
	reportService *report.Service,
) func(
	w http.ResponseWriter, r *http.Request,
) {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.SendReportHandler"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", uuid.New().String()),
		)

		var req SendReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("пустой или некорректный запрос", sl.Err(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "данные не переданы"})
			return
		}

		if req.BotToken == "" || req.GroupID == "" {
			log.Error("в запросе нет токена бота или id группы")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "настройки бота заполнены не полностью"})
			return
		}

		event := eventFromRequest(&req)

		log.Info("получено событие отчета",
			slog.String("report_id", event.ReportID),
			slog.String("type", string(event.Kind)),
		)

		if err := reportService.Dispatch(event); err != nil {
			log.Error("не удалось отправить уведомление", sl.Err(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "внутренняя ошибка сервера"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(SendReportResponse{Status: "принято к отправке"})
	}
}

func eventFromRequest(req *SendReportRequest) *models.ReportEvent {
	kind := models.ReportKind(req.Type)
	if req.Type == "" {
		kind = models.ReportKindNew
	}

	// report_id приходит от сервера то числом, то строкой
	reportID := "N/A"
	if req.ReportID != nil {
		reportID = fmt.Sprint(req.ReportID)
	}

	return &models.ReportEvent{
		Kind:        kind,
		ReportID:    reportID,
		Author:      req.Author,
		Location:    req.Location,
		Date:        req.Date,
		LateComment: req.LateComment,
		Data:        req.Data,
		OldData:     req.OldData,
		Layout:      req.Settings,
		BotToken:    req.BotToken,
		GroupID:     req.GroupID,
	}
}
