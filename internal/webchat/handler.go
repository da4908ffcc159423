package webchat

import (
	"context"
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/agentica-labs/widget-backend/internal/conversation"
	"github.com/agentica-labs/widget-backend/pkg/logging"
)

//go:embed widget.js
var widgetJS []byte

// SessionHistory exposes the session transcript for replay on reconnect
// and lets the transport refresh the session's idle timer.
type SessionHistory interface {
	History(sessionID string) []conversation.ChatMessage
	Touch(sessionID string)
}

// Handler manages web chat WebSocket connections. HTTP POST /chat remains
// the fallback transport for widgets without WebSocket support.
type Handler struct {
	chat    conversation.Service
	history SessionHistory
	logger  *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*wsConn // sessionID -> active connection
}

type wsConn struct {
	conn  *websocket.Conn
	inbox chan string
	done  chan struct{}
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string             `json:"type"` // "message", "typing", "history", "session", "lead", "pong", "error"
	Text      string             `json:"text,omitempty"`
	Role      string             `json:"role,omitempty"`
	SessionID string             `json:"session_id,omitempty"`
	Timestamp string             `json:"timestamp,omitempty"`
	Messages  []HistoryMessage   `json:"messages,omitempty"`
	Lead      *conversation.Lead `json:"lead,omitempty"`
}

// HistoryMessage is a simplified message for history replay.
type HistoryMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// NewHandler creates a web chat handler.
func NewHandler(chat conversation.Service, history SessionHistory, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		chat:     chat,
		history:  history,
		logger:   logger,
		sessions: make(map[string]*wsConn),
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	// Send session info
	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})

	// Replay history if available and keep the session from idling out
	// while the visitor has the widget open.
	if h.history != nil {
		h.history.Touch(sessionID)
		if msgs := h.history.History(sessionID); len(msgs) > 0 {
			history := make([]HistoryMessage, 0, len(msgs))
			for _, m := range msgs {
				history = append(history, HistoryMessage{Role: m.Role, Text: m.Content})
			}
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: history})
		}
	}

	// Register connection
	wsc := &wsConn{conn: conn, inbox: make(chan string, 16), done: make(chan struct{})}
	h.mu.Lock()
	h.sessions[sessionID] = wsc
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.sessions[sessionID] == wsc {
			delete(h.sessions, sessionID)
		}
		h.mu.Unlock()
		close(wsc.done)
	}()

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	// Turns run off the read loop so long model calls don't stall pings,
	// but through a single worker so one session never has two model calls
	// in flight and turn pairs are recorded in send order.
	go h.runTurns(r.Context(), sessionID, wsc)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		select {
		case wsc.inbox <- msg.Text:
		default:
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type: "error",
				Text: "You're sending messages too quickly. Please wait for a reply.",
			})
		}
	}
}

func (h *Handler) runTurns(ctx context.Context, sessionID string, wsc *wsConn) {
	for {
		select {
		case <-wsc.done:
			return
		case text := <-wsc.inbox:
			h.processMessage(ctx, sessionID, text)
		}
	}
}

func (h *Handler) processMessage(ctx context.Context, sessionID, text string) {
	h.sendToSession(sessionID, OutboundMessage{Type: "typing"})

	result, err := h.chat.ProcessMessage(ctx, sessionID, text)
	if err != nil {
		h.logger.Error("webchat: failed to process message", "error", err, "session_id", sessionID)
		detail := "Sorry, something went wrong. Please try again."
		if errors.Is(err, conversation.ErrModelOverloaded) {
			detail = "The AI is currently overloaded. Please try again in a few seconds."
		}
		h.sendToSession(sessionID, OutboundMessage{Type: "error", Text: detail})
		return
	}

	h.sendToSession(sessionID, OutboundMessage{
		Type:      "message",
		Role:      conversation.ChatRoleAssistant,
		Text:      result.Reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	if result.Lead != nil {
		h.sendToSession(sessionID, OutboundMessage{Type: "lead", Lead: result.Lead})
	}
}

// sendToSession sends a message to an active WebSocket session.
func (h *Handler) sendToSession(sessionID string, msg OutboundMessage) {
	h.mu.RLock()
	wsc, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	_ = websocket.JSON.Send(wsc.conn, msg)
}

// HandleWidgetJS serves the embeddable widget JavaScript.
func (h *Handler) HandleWidgetJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(widgetJS)
}
