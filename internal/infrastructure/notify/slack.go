package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/zebrands/catalog-api/internal/core/ports"
)

const defaultSlackTimeout = 5 * time.Second

type slackAttachment struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

type slackMessage struct {
	Attachments []slackAttachment `json:"attachments"`
}

// Slack posts notifications to an incoming webhook as a single attachment.
type Slack struct {
	webhook string
	client  *http.Client
}

func NewSlack(webhook string, timeout time.Duration) *Slack {
	if timeout <= 0 {
		timeout = defaultSlackTimeout
	}
	return &Slack{webhook: webhook, client: &http.Client{Timeout: timeout}}
}

// Notify sends one request. Detail is the response status code, or the
// transport error text when no response was received.
func (s *Slack) Notify(ctx context.Context, n ports.Notification) ports.DeliveryResult {
	start := time.Now()
	return observe("slack", start, s.send(ctx, n))
}

func (s *Slack) send(ctx context.Context, n ports.Notification) ports.DeliveryResult {
	if s.webhook == "" {
		return failed(errors.New("slack webhook not configured"))
	}
	color := n.Color
	if color == "" {
		color = "good"
	}
	body, err := json.Marshal(slackMessage{Attachments: []slackAttachment{{Title: n.Title, Text: n.Text, Color: color}}})
	if err != nil {
		return failed(fmt.Errorf("encode slack message: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhook, bytes.NewReader(body))
	if err != nil {
		return failed(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return failed(err)
	}
	defer resp.Body.Close()

	return ports.DeliveryResult{
		Delivered: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Detail:    strconv.Itoa(resp.StatusCode),
	}
}
