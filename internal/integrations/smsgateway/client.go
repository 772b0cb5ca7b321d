package smsgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config параметры SMS-шлюза (Twilio-совместимый API)
type Config struct {
	APIURL     string
	AccountSID string
	AuthToken  string
	From       string
	Timeout    time.Duration
}

// Client клиент SMS-шлюза
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента SMS-шлюза
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Configured возвращает true, если заданы все реквизиты шлюза
func (c *Client) Configured() bool {
	return c.cfg.APIURL != "" && c.cfg.AccountSID != "" && c.cfg.AuthToken != "" && c.cfg.From != ""
}

type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Send отправляет SMS и возвращает SID сообщения
func (c *Client) Send(ctx context.Context, to, text string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return "", ErrInvalidRecipient
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.cfg.From)
	form.Set("Body", text)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", strings.TrimRight(c.cfg.APIURL, "/"), c.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var out messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return out.SID, nil
}
