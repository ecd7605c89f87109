package report

import (
	"fmt"
	"log/slog"

	"reportRelayBot/internal/domain/models"
	"reportRelayBot/internal/pkg/logger/sl"
)

// Transport - одна непрозрачная операция "отправить текст в чат".
type Transport interface {
	SendMessage(chatID string, text string, markdown bool) error
}

// TransportFactory создает транспорт под токен конкретного запроса.
// Токены различаются от запроса к запросу, результат не мемоизируется.
type TransportFactory func(token string) (Transport, error)

type Service struct {
	log          *slog.Logger
	newTransport TransportFactory
}

func New(log *slog.Logger, newTransport TransportFactory) *Service {
	return &Service{
		log:          log,
		newTransport: newTransport,
	}
}

// Dispatch собирает сообщение по типу события и отправляет его в группу.
// Неизвестный тип - осознанный no-op: пишем warning и ничего не шлем.
// Ошибка транспорта логируется и возвращается наверх без повторных попыток.
func (s *Service) Dispatch(event *models.ReportEvent) error {
	const op = "report.Dispatch"

	log := s.log.With(
		slog.String("op", op),
		slog.String("report_id", event.ReportID),
	)

	var text string
	switch event.Kind {
	case models.ReportKindNew:
		text = newReportMessage(event)
	case models.ReportKindEdit:
		text = editedReportMessage(event)
	default:
		log.Warn("неизвестный тип отчета, уведомление не отправлено",
			slog.String("type", string(event.Kind)))
		return nil
	}

	client, err := s.newTransport(event.BotToken)
	if err != nil {
		log.Error("не удалось создать клиент бота", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := client.SendMessage(event.GroupID, text, true); err != nil {
		log.Error("не удалось отправить уведомление в группу", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if event.Kind == models.ReportKindEdit {
		log.Info("уведомление об изменении отчета отправлено в группу")
	} else {
		log.Info("уведомление о новом отчете отправлено в группу")
	}

	return nil
}
