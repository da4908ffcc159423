package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentica-labs/widget-backend/pkg/logging"
)

// Lead is the structured record extracted from a completed lead-collection
// flow. Fields are free text; the widget forwards the record to /lead.
type Lead struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Message string `json:"message"`
}

const extractionPrompt = `Analyze this conversation history:
%s

The AI just completed a lead collection (marked by [LEAD_COMPLETE]).
Extract the final confirmed details provided by the user:
- Name
- Contact (Email/Phone)
- Message/Requirement

Return ONLY a JSON object: {"name": "...", "contact": "...", "message": "..."}`

// LeadExtractor coerces a finished lead-collection conversation into a Lead
// with a second model call and best-effort JSON parsing.
type LeadExtractor struct {
	llm     LLMClient
	modelID string
	logger  *logging.Logger
	tracer  trace.Tracer
}

// NewLeadExtractor creates a lead extractor backed by the given client.
func NewLeadExtractor(llm LLMClient, modelID string, logger *logging.Logger) *LeadExtractor {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadExtractor{
		llm:     llm,
		modelID: modelID,
		logger:  logger,
		tracer:  otel.Tracer("widget.internal.conversation.extractor"),
	}
}

// Extract renders the transcript (prior history plus the turn that produced
// the completion token) and asks the model for the structured lead.
func (e *LeadExtractor) Extract(ctx context.Context, history []ChatMessage, userMessage, reply string) (*Lead, error) {
	ctx, span := e.tracer.Start(ctx, "conversation.extract_lead")
	defer span.End()

	transcript := renderTranscript(history, userMessage, reply)

	resp, err := e.llm.Complete(ctx, LLMRequest{
		Model:       e.modelID,
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: fmt.Sprintf(extractionPrompt, transcript)}},
		MaxTokens:   256,
		Temperature: 0,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: lead extraction call failed: %w", err)
	}

	lead, err := parseLeadJSON(resp.Text)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return lead, nil
}

// renderTranscript flattens the exchange into "User:"/"Model:" lines the
// extraction prompt expects.
func renderTranscript(history []ChatMessage, userMessage, reply string) string {
	var b strings.Builder
	for _, m := range history {
		label := "User"
		if m.Role == ChatRoleAssistant {
			label = "Model"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(userMessage)
	b.WriteString("\nModel: ")
	b.WriteString(reply)
	return b.String()
}

// parseLeadJSON scans free-form model output for the first '{' and the last
// '}' and unmarshals whatever sits between them.
func parseLeadJSON(text string) (*Lead, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, ErrNoLeadPayload
	}

	var lead Lead
	if err := json.Unmarshal([]byte(text[start:end+1]), &lead); err != nil {
		return nil, fmt.Errorf("conversation: failed to decode lead JSON: %w", err)
	}
	return &lead, nil
}
