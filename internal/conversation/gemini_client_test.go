package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestNewGeminiLLMClientRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiLLMClient(context.Background(), "   ", "gemini-2.0-flash")
	if err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "googleapi 429",
			err:  &googleapi.Error{Code: 429, Message: "quota exceeded"},
			want: true,
		},
		{
			name: "wrapped googleapi 429",
			err:  fmt.Errorf("call failed: %w", &googleapi.Error{Code: 429}),
			want: true,
		},
		{
			name: "resource exhausted status text",
			err:  errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"),
			want: true,
		},
		{
			name: "googleapi 500",
			err:  &googleapi.Error{Code: 500, Message: "internal"},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuotaError(tt.err); got != tt.want {
				t.Fatalf("isQuotaError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
