package emailservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config параметры транзакционного email-провайдера
type Config struct {
	APIURL  string
	APIKey  string
	From    string
	Timeout time.Duration
}

// Client клиент HTTP API email-провайдера
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента email-провайдера
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Configured возвращает true, если заданы адрес API и ключ
func (c *Client) Configured() bool {
	return c.cfg.APIURL != "" && c.cfg.APIKey != ""
}

// Send отправляет письмо и возвращает ID сообщения у провайдера
func (c *Client) Send(ctx context.Context, to, subject, text string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return "", ErrInvalidRecipient
	}

	body, err := json.Marshal(Message{To: to, From: c.cfg.From, Subject: subject, Text: text})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	url := strings.TrimRight(c.cfg.APIURL, "/") + "/v1/email"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return out.ID, nil
}
