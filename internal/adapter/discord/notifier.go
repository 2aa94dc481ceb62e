// Package discord implements the outbound notifier and the role grant
// service against the Discord REST API.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/closetware/landlord/internal/port/notifier"
)

const providerName = "discord"

// An embed holds at most 25 fields; longer rosters are split across
// several embeds in one webhook call.
const maxEmbedFields = 25

// Notifier sends messages to a channel via incoming webhook.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewNotifier creates a Discord notifier with the given webhook URL.
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: http.DefaultClient,
	}
}

func (n *Notifier) Name() string { return providerName }

// discordWebhook is the webhook payload.
type discordWebhook struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

type discordField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (n *Notifier) Send(ctx context.Context, msg notifier.Message) error {
	if n.webhookURL == "" {
		return notifier.ErrNotConfigured
	}

	payload := discordWebhook{Content: msg.Content}
	if msg.Title != "" || msg.Description != "" || len(msg.Fields) > 0 {
		payload.Embeds = buildEmbeds(msg)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req) //nolint:gosec // webhook URL from trusted config
	if err != nil {
		return fmt.Errorf("discord send: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Discord returns 204 on success
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord API %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// buildEmbeds chunks message fields across embeds at the platform's
// 25-field limit. The title and description ride on the first embed only.
func buildEmbeds(msg notifier.Message) []discordEmbed {
	first := discordEmbed{
		Title:       msg.Title,
		Description: msg.Description,
		Color:       msg.Color,
	}

	if len(msg.Fields) == 0 {
		return []discordEmbed{first}
	}

	var embeds []discordEmbed
	cur := first
	for _, f := range msg.Fields {
		if len(cur.Fields) >= maxEmbedFields {
			embeds = append(embeds, cur)
			cur = discordEmbed{Color: msg.Color}
		}
		cur.Fields = append(cur.Fields, discordField{Name: f.Name, Value: f.Value})
	}
	return append(embeds, cur)
}
