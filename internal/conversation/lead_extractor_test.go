package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentica-labs/widget-backend/pkg/logging"
)

// scriptedLLM replays canned responses and records the requests it saw.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []LLMResponse
	errs      []error
	requests  []LLMRequest
}

func (s *scriptedLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return LLMResponse{}, err
		}
	}
	if len(s.responses) == 0 {
		return LLMResponse{}, errors.New("scriptedLLM: no response scripted")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func TestParseLeadJSON(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    *Lead
		wantErr bool
	}{
		{
			name: "bare object",
			text: `{"name":"Jordan Lee","contact":"jordan@example.com","message":"Demo of CRM Intelligence"}`,
			want: &Lead{Name: "Jordan Lee", Contact: "jordan@example.com", Message: "Demo of CRM Intelligence"},
		},
		{
			name: "object wrapped in prose and fences",
			text: "Sure! Here is the JSON:\n```json\n{\"name\": \"Ana\", \"contact\": \"+15550100\", \"message\": \"pricing\"}\n```\nLet me know if you need anything else.",
			want: &Lead{Name: "Ana", Contact: "+15550100", Message: "pricing"},
		},
		{
			name:    "no braces at all",
			text:    "I could not find any lead details.",
			wantErr: true,
		},
		{
			name:    "braces but invalid JSON",
			text:    `{"name": "Ana", "contact": }`,
			wantErr: true,
		},
		{
			name:    "closing brace before opening",
			text:    `} nothing {`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLeadJSON(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLeadJSONMissingBraceIsSentinel(t *testing.T) {
	_, err := parseLeadJSON("no json here")
	assert.ErrorIs(t, err, ErrNoLeadPayload)
}

func TestRenderTranscript(t *testing.T) {
	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "Hi"},
		{Role: ChatRoleAssistant, Content: "Hello! How can I help?"},
	}

	got := renderTranscript(history, "I want a demo", "Great, what's your name?")
	want := "User: Hi\nModel: Hello! How can I help?\nUser: I want a demo\nModel: Great, what's your name?"
	assert.Equal(t, want, got)
}

func TestLeadExtractorExtract(t *testing.T) {
	llm := &scriptedLLM{responses: []LLMResponse{
		{Text: `Here you go: {"name":"Jordan","contact":"jordan@example.com","message":"needs SocialOS"}`},
	}}
	extractor := NewLeadExtractor(llm, "gemini-2.0-flash", logging.New("error"))

	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "I'm Jordan"},
		{Role: ChatRoleAssistant, Content: "Thanks Jordan, what's your email?"},
	}
	lead, err := extractor.Extract(context.Background(), history, "jordan@example.com", "Thank you for submitting your details.")
	require.NoError(t, err)
	assert.Equal(t, "Jordan", lead.Name)
	assert.Equal(t, "jordan@example.com", lead.Contact)
	assert.Equal(t, "needs SocialOS", lead.Message)

	require.Len(t, llm.requests, 1)
	req := llm.requests[0]
	assert.Equal(t, "gemini-2.0-flash", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "User: I'm Jordan")
	assert.Contains(t, req.Messages[0].Content, "Model: Thank you for submitting your details.")
	assert.Contains(t, req.Messages[0].Content, "Return ONLY a JSON object")
}

func TestLeadExtractorPropagatesCallErrors(t *testing.T) {
	llm := &scriptedLLM{errs: []error{errors.New("upstream down")}}
	extractor := NewLeadExtractor(llm, "gemini-2.0-flash", logging.New("error"))

	_, err := extractor.Extract(context.Background(), nil, "hi", "bye")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead extraction call failed")
}
