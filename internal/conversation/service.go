package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentica-labs/widget-backend/internal/observability/metrics"
	"github.com/agentica-labs/widget-backend/pkg/logging"
)

// ChatResult is the outcome of one exchange. Lead is nil unless the model
// emitted the completion token and extraction succeeded.
type ChatResult struct {
	Reply string
	Lead  *Lead
}

// Service processes chat messages. Implemented by ChatService; handlers and
// the webchat transport depend on this interface.
type Service interface {
	ProcessMessage(ctx context.Context, sessionID, message string) (ChatResult, error)
}

// Options tunes the chat model call. RequestTimeout bounds the whole turn,
// extraction call included; zero means no deadline beyond the caller's.
type Options struct {
	ModelID        string
	MaxTokens      int32
	Temperature    float32
	RequestTimeout time.Duration
}

// ChatService orchestrates a chat turn: history snapshot, model call,
// completion-token handling, lead extraction, and history bookkeeping.
type ChatService struct {
	llm       LLMClient
	extractor *LeadExtractor
	store     *SessionStore
	metrics   *metrics.ChatMetrics
	logger    *logging.Logger
	tracer    trace.Tracer
	opts      Options
}

// NewChatService creates the chat orchestrator.
func NewChatService(llm LLMClient, extractor *LeadExtractor, store *SessionStore, m *metrics.ChatMetrics, logger *logging.Logger, opts Options) *ChatService {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	return &ChatService{
		llm:       llm,
		extractor: extractor,
		store:     store,
		metrics:   m,
		logger:    logger,
		tracer:    otel.Tracer("widget.internal.conversation"),
		opts:      opts,
	}
}

// ProcessMessage runs one exchange for the given session.
func (s *ChatService) ProcessMessage(ctx context.Context, sessionID, message string) (ChatResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ChatResult{}, ErrMissingSession
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatResult{}, ErrEmptyMessage
	}

	ctx, span := s.tracer.Start(ctx, "conversation.process_message",
		trace.WithAttributes(attribute.String("session_id", sessionID)))
	defer span.End()

	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	history := s.store.History(sessionID)

	req := LLMRequest{
		Model:       s.opts.ModelID,
		System:      []string{SystemPrompt},
		Messages:    append(history, ChatMessage{Role: ChatRoleUser, Content: message}),
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	}

	start := time.Now()
	resp, err := s.llm.Complete(ctx, req)
	s.metrics.ObserveModelLatency("chat", time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrModelOverloaded) {
			s.logger.Warn("model quota exhausted", "session_id", sessionID)
			return ChatResult{}, err
		}
		s.logger.Error("model call failed", "error", err, "session_id", sessionID)
		return ChatResult{}, err
	}

	reply := resp.Text
	var lead *Lead

	if strings.Contains(reply, LeadCompleteToken) {
		reply = strings.TrimSpace(strings.ReplaceAll(reply, LeadCompleteToken, ""))

		extractStart := time.Now()
		extracted, extractErr := s.extractor.Extract(ctx, history, message, reply)
		s.metrics.ObserveModelLatency("lead_extraction", time.Since(extractStart).Seconds())
		if extractErr != nil {
			// Extraction is best-effort: the visitor still gets the reply.
			s.metrics.ObserveLeadExtraction("error")
			s.logger.Error("lead extraction failed", "error", extractErr, "session_id", sessionID)
		} else {
			s.metrics.ObserveLeadExtraction("ok")
			s.logger.Info("lead extracted", "session_id", sessionID, "name", extracted.Name)
			lead = extracted
		}
	}

	s.store.RecordTurn(sessionID, message, reply)
	s.metrics.SetActiveSessions(s.store.ActiveSessions())

	return ChatResult{Reply: reply, Lead: lead}, nil
}

var _ Service = (*ChatService)(nil)
