package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/agentica-labs/widget-backend/internal/observability/metrics"
	"github.com/agentica-labs/widget-backend/pkg/logging"
)

// Notifier forwards a completed lead to the operator channel.
type Notifier interface {
	NotifyLead(ctx context.Context, lead *Lead) error
}

const notifyTimeout = 10 * time.Second

// Handler handles HTTP requests for leads
type Handler struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.ChatMetrics
	logger   *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(repo Repository, notifier Notifier, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// CreateLead handles POST /lead. The Telegram forward runs on its own
// goroutine so the widget never waits on the messaging API.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode lead request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to store lead", "error", err)
		http.Error(w, "Failed to record lead", http.StatusInternalServerError)
		return
	}

	h.logger.Info("lead received", "id", lead.ID, "name", lead.Name, "source", lead.Source)

	if h.notifier != nil {
		go h.forward(lead)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "received"})
}

func (h *Handler) forward(lead *Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := h.notifier.NotifyLead(ctx, lead); err != nil {
		h.metrics.ObserveLeadForward("failed")
		h.logger.Error("failed to forward lead", "error", err, "id", lead.ID)
		return
	}
	h.metrics.ObserveLeadForward("sent")
}
