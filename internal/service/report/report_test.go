package report

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"reportRelayBot/internal/domain/models"
)

type fakeTransport struct {
	sendErr error

	chatIDs  []string
	texts    []string
	markdown []bool
}

func (f *fakeTransport) SendMessage(chatID string, text string, markdown bool) error {
	f.chatIDs = append(f.chatIDs, chatID)
	f.texts = append(f.texts, text)
	f.markdown = append(f.markdown, markdown)
	return f.sendErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent(kind models.ReportKind) *models.ReportEvent {
	return &models.ReportEvent{
		Kind:     kind,
		ReportID: "42",
		Author:   "tester",
		Location: "branch",
		Date:     "2026-01-05",
		Data:     map[string]any{"cash_am": "500"},
		OldData:  map[string]any{"cash_am": "300"},
		Layout:   models.Layout{Rows: []string{"cash"}, Columns: []string{"am"}},
		BotToken: "123:token",
		GroupID:  "-100200300",
	}
}

func TestDispatch_SendsNewReport(t *testing.T) {
	transport := &fakeTransport{}
	var gotToken string

	svc := New(testLogger(), func(token string) (Transport, error) {
		gotToken = token
		return transport, nil
	})

	if err := svc.Dispatch(testEvent(models.ReportKindNew)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotToken != "123:token" {
		t.Errorf("transport must be built from the request token, got %q", gotToken)
	}

	if len(transport.texts) != 1 {
		t.Fatalf("want exactly one send, got %d", len(transport.texts))
	}

	if transport.chatIDs[0] != "-100200300" {
		t.Errorf("wrong chat id: %q", transport.chatIDs[0])
	}

	if !transport.markdown[0] {
		t.Error("message must be sent in markdown mode")
	}

	if !strings.Contains(transport.texts[0], "Новый отчет") {
		t.Errorf("new report must render the new-report message:\n%s", transport.texts[0])
	}
}

func TestDispatch_SendsEditedReport(t *testing.T) {
	transport := &fakeTransport{}

	svc := New(testLogger(), func(string) (Transport, error) {
		return transport, nil
	})

	if err := svc.Dispatch(testEvent(models.ReportKindEdit)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transport.texts) != 1 {
		t.Fatalf("want exactly one send, got %d", len(transport.texts))
	}

	if !strings.Contains(transport.texts[0], "Отчет изменен") {
		t.Errorf("edit must render the diff message:\n%s", transport.texts[0])
	}
}

func TestDispatch_UnknownKindIsNoOp(t *testing.T) {
	transport := &fakeTransport{}
	factoryCalls := 0

	svc := New(testLogger(), func(string) (Transport, error) {
		factoryCalls++
		return transport, nil
	})

	if err := svc.Dispatch(testEvent("delete")); err != nil {
		t.Fatalf("unknown kind must not be an error, got: %v", err)
	}

	if factoryCalls != 0 || len(transport.texts) != 0 {
		t.Error("unknown kind must not touch the transport")
	}
}

func TestDispatch_FactoryErrorPropagates(t *testing.T) {
	wantErr := errors.New("bad token")

	svc := New(testLogger(), func(string) (Transport, error) {
		return nil, wantErr
	})

	err := svc.Dispatch(testEvent(models.ReportKindNew))
	if !errors.Is(err, wantErr) {
		t.Errorf("factory error must propagate, got: %v", err)
	}
}

func TestDispatch_SendErrorPropagates(t *testing.T) {
	wantErr := errors.New("telegram is down")
	transport := &fakeTransport{sendErr: wantErr}

	svc := New(testLogger(), func(string) (Transport, error) {
		return transport, nil
	})

	err := svc.Dispatch(testEvent(models.ReportKindNew))
	if !errors.Is(err, wantErr) {
		t.Errorf("send error must propagate, got: %v", err)
	}

	if len(transport.texts) != 1 {
		t.Errorf("send must be attempted exactly once, got %d", len(transport.texts))
	}
}
