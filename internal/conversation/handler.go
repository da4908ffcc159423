package conversation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agentica-labs/widget-backend/internal/observability/metrics"
	"github.com/agentica-labs/widget-backend/pkg/logging"
)

const overloadedDetail = "The AI is currently overloaded. Please try again in a few seconds."

// Handler wires HTTP requests to the conversation service.
type Handler struct {
	service Service
	store   *SessionStore
	metrics *metrics.ChatMetrics
	modelID string
	logger  *logging.Logger
}

// NewHandler creates a conversation handler.
func NewHandler(service Service, store *SessionStore, m *metrics.ChatMetrics, modelID string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		store:   store,
		metrics: m,
		modelID: modelID,
		logger:  logger,
	}
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the body of a successful POST /chat.
type ChatResponse struct {
	Reply string `json:"reply"`
	Lead  *Lead  `json:"lead,omitempty"`
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode chat request", "error", err)
		h.metrics.ObserveRequest("bad_request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.ProcessMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			h.metrics.ObserveRequest("bad_request")
			http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		case errors.Is(err, ErrMissingSession):
			h.metrics.ObserveRequest("bad_request")
			http.Error(w, "session_id is required", http.StatusBadRequest)
		case errors.Is(err, ErrModelOverloaded):
			h.metrics.ObserveRequest("overloaded")
			http.Error(w, overloadedDetail, http.StatusTooManyRequests)
		default:
			h.logger.Error("failed to process chat message", "error", err)
			h.metrics.ObserveRequest("error")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	h.metrics.ObserveRequest("ok")
	h.writeJSON(w, http.StatusOK, ChatResponse{Reply: result.Reply, Lead: result.Lead})
}

// HistoryMessage is one transcript entry in GET /chat/history responses.
type HistoryMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// History handles GET /chat/history?session_id=...
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id parameter required", http.StatusBadRequest)
		return
	}

	msgs := h.store.History(sessionID)
	history := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, HistoryMessage{Role: m.Role, Text: m.Content})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"messages": history})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  h.modelID,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
