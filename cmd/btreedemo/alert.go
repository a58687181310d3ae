package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brensch/behaviortree"
)

// discordEmbed mirrors the subset of Discord's embed object the demo needs.
type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

const (
	colorWarning = 0xE6B800
	colorOK      = 0x2ECC71
)

func sendDiscordWebhook(webhookURL, content string, embeds []discordEmbed) error {
	if webhookURL == "" {
		slog.Info("no webhook configured, logging alert instead", "content", content)
		return nil
	}

	payload := discordWebhookPayload{Content: content, Embeds: embeds}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("post discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// failureStreakAlerter watches a named subtree's per-tick outcome and posts
// a Discord alert once it has failed threshold ticks in a row, resetting
// on the first tick whose status is not Failure.
type failureStreakAlerter struct {
	webhookURL string
	subject    string
	threshold  int

	streak int
	firing bool
}

func newFailureStreakAlerter(webhookURL, subject string, threshold int) *failureStreakAlerter {
	return &failureStreakAlerter{webhookURL: webhookURL, subject: subject, threshold: threshold}
}

// Observe records the latest root status and fires an alert the tick the
// streak first crosses threshold. It is idempotent while the streak
// continues, and resets once a non-Failure status is observed.
func (a *failureStreakAlerter) Observe(status Status) {
	if status != behaviortree.Failure {
		if a.firing {
			a.firing = false
			_ = sendDiscordWebhook(a.webhookURL, "", []discordEmbed{{
				Title:     fmt.Sprintf("%s recovered", a.subject),
				Color:     colorOK,
				Timestamp: time.Now().Format(time.RFC3339),
			}})
		}
		a.streak = 0
		return
	}

	a.streak++
	if a.streak == a.threshold && !a.firing {
		a.firing = true
		_ = sendDiscordWebhook(a.webhookURL, "", []discordEmbed{{
			Title:       fmt.Sprintf("%s failing", a.subject),
			Description: fmt.Sprintf("failed %d ticks in a row", a.streak),
			Color:       colorWarning,
			Timestamp:   time.Now().Format(time.RFC3339),
			Fields: []discordEmbedField{
				{Name: "streak", Value: fmt.Sprintf("%d", a.streak), Inline: true},
			},
		}})
	}
}
