package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agentica-labs/widget-backend/internal/leads"
	"github.com/agentica-labs/widget-backend/pkg/logging"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	defaultTimeout = 10 * time.Second
)

// Config controls how the Telegram notifier behaves.
type Config struct {
	BaseURL    string
	BotToken   string
	ChatID     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// TelegramNotifier forwards leads to a Telegram chat via the bot sendMessage
// API. Missing credentials make it a logging no-op so local setups work
// without a bot.
type TelegramNotifier struct {
	baseURL    string
	botToken   string
	chatID     string
	httpClient *http.Client
	logger     *logging.Logger
	now        func() time.Time
}

// NewTelegramNotifier creates a configured notifier with sane defaults.
func NewTelegramNotifier(cfg Config) *TelegramNotifier {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &TelegramNotifier{
		baseURL:    baseURL,
		botToken:   strings.TrimSpace(cfg.BotToken),
		chatID:     strings.TrimSpace(cfg.ChatID),
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// Enabled reports whether credentials are present.
func (n *TelegramNotifier) Enabled() bool {
	return n.botToken != "" && n.chatID != ""
}

type sendMessagePayload struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// NotifyLead formats the lead and posts it to the configured chat.
func (n *TelegramNotifier) NotifyLead(ctx context.Context, lead *leads.Lead) error {
	if !n.Enabled() {
		n.logger.Warn("telegram credentials missing, skipping lead notification")
		return nil
	}

	payload := sendMessagePayload{
		ChatID:    n.chatID,
		Text:      n.formatLead(lead),
		ParseMode: "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: failed to encode telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify: telegram sendMessage returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	n.logger.Info("lead forwarded to telegram", "lead_id", lead.ID, "name", lead.Name)
	return nil
}

func (n *TelegramNotifier) formatLead(lead *leads.Lead) string {
	timestamp := n.now().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("🔥 *New Lead — Agentica Web*\n\n"+
		"👤 *Name:* %s\n"+
		"📞 *Contact:* %s\n"+
		"💬 *Message:* %s\n"+
		"🔗 *Page:* %s\n\n"+
		"⏰ *Time:* %s",
		lead.Name, lead.Contact, lead.Message, lead.PageURL, timestamp)
}

var _ leads.Notifier = (*TelegramNotifier)(nil)
