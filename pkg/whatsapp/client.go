package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGraphBaseURL = "https://graph.facebook.com/v19.0"

// Sender is the outbound message contract the delivery pipeline depends
// on, so tests can swap the Graph API for a recorder.
type Sender interface {
	SendText(ctx context.Context, phoneNumberId, to, body string) error
}

// Client talks to the WhatsApp Cloud API (Graph API).
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

var _ Sender = &Client{}

func NewClient(accessToken string) *Client {
	return &Client{
		baseURL:     defaultGraphBaseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type textMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             messageText `json:"text"`
}

type messageText struct {
	Body string `json:"body"`
}

// SendText delivers a plain text message from the given business phone
// number to a user.
func (c *Client) SendText(ctx context.Context, phoneNumberId, to, body string) error {
	if c.accessToken == "" {
		return fmt.Errorf("whatsapp access token is not configured")
	}

	payload := textMessageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             messageText{Body: body},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, phoneNumberId)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}
