package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/agentica-labs/widget-backend/internal/config"
	"github.com/agentica-labs/widget-backend/internal/conversation"
)

// Smoke test for Gemini connectivity: replays a short lead-collection
// exchange through the configured model and prints the reply.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GeminiTimeout)
	defer cancel()

	client, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}
	defer client.Close()

	messages := []conversation.ChatMessage{
		{Role: conversation.ChatRoleUser, Content: "Hi, I'd like a demo of CRM Intelligence. What does it cost?"},
		{Role: conversation.ChatRoleAssistant, Content: "Happy to help with that! To get you a demo, may I have your name?"},
		{Role: conversation.ChatRoleUser, Content: "Sure, I'm Jordan Lee."},
	}

	req := conversation.LLMRequest{
		System:      []string{conversation.SystemPrompt},
		Messages:    messages,
		MaxTokens:   200,
		Temperature: float32(cfg.GeminiTemperature),
	}

	fmt.Printf("Testing %s...\n", cfg.GeminiModelID)
	start := time.Now()
	resp, err := client.Complete(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		log.Fatalf("gemini error: %v", err)
	}

	fmt.Printf("Response (%v):\n%s\n", elapsed.Round(time.Millisecond), resp.Text)
	fmt.Printf("Tokens: in=%d, out=%d\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
}
