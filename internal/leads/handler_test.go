package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agentica-labs/widget-backend/pkg/logging"
)

// recordingNotifier signals on a channel so tests can wait for the
// background forward without racing it.
type recordingNotifier struct {
	leads chan *Lead
	err   error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{leads: make(chan *Lead, 1)}
}

func (n *recordingNotifier) NotifyLead(_ context.Context, lead *Lead) error {
	n.leads <- lead
	return n.err
}

func TestCreateLead_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := newRecordingNotifier()
	handler := NewHandler(repo, notifier, nil, logging.New("error"))

	body := `{"name":"Jordan Lee","contact":"jordan@example.com","message":"Wants a demo","page_url":"https://agentica.ai/pricing"}`
	req := httptest.NewRequest(http.MethodPost, "/lead", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "received" {
		t.Errorf("expected status received, got %q", resp["status"])
	}

	select {
	case lead := <-notifier.leads:
		if lead.Name != "Jordan Lee" {
			t.Errorf("expected forwarded lead name, got %q", lead.Name)
		}
		if lead.PageURL != "https://agentica.ai/pricing" {
			t.Errorf("expected forwarded page URL, got %q", lead.PageURL)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never called")
	}

	stored, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list leads: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored lead, got %d", len(stored))
	}
}

func TestCreateLead_AppliesDefaults(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := newRecordingNotifier()
	handler := NewHandler(repo, notifier, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodPost, "/lead", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	select {
	case lead := <-notifier.leads:
		if lead.Name != "Unknown" || lead.Contact != "Unknown" {
			t.Errorf("expected Unknown defaults, got name=%q contact=%q", lead.Name, lead.Contact)
		}
		if lead.Message != "Inquired via Chat" {
			t.Errorf("expected default message, got %q", lead.Message)
		}
		if lead.Source != "chat_widget" {
			t.Errorf("expected default source, got %q", lead.Source)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestCreateLead_InvalidJSON(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), nil, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodPost, "/lead", strings.NewReader("{"))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateLead_NilNotifier(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), nil, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodPost, "/lead", strings.NewReader(`{"name":"Ana"}`))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d without a notifier, got %d", http.StatusOK, w.Code)
	}
}
