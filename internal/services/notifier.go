package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/types"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorGreen  = 65280    // #00FF00 - goal achieved
	ColorOrange = 16753920 // #FFA500 - goal missed

	Username = "Gradewise"
)

// Notifier posts goal outcomes to the configured webhooks. Empty URLs are skipped.
type Notifier struct {
	DiscordWebhook string
	SlackWebhook   string
	Client         *http.Client
}

func NewNotifier(discordWebhook, slackWebhook string) *Notifier {
	return &Notifier{
		DiscordWebhook: discordWebhook,
		SlackWebhook:   slackWebhook,
		Client:         &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether any webhook is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && (n.DiscordWebhook != "" || n.SlackWebhook != "")
}

func (n *Notifier) SendGoalOutcome(ctx context.Context, user models.User, goal models.Goal) error {
	if !n.Enabled() {
		return nil
	}

	if n.DiscordWebhook != "" {
		if err := n.post(ctx, n.DiscordWebhook, discordGoalPayload(user, goal)); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if n.SlackWebhook != "" {
		if err := n.post(ctx, n.SlackWebhook, slackGoalPayload(user, goal)); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func achievedText(goal models.Goal) string {
	if goal.AchievedScore == nil {
		return "No scores recorded"
	}
	return fmt.Sprintf("%.1f", *goal.AchievedScore)
}

func discordGoalPayload(user models.User, goal models.Goal) DiscordWebhookRequest {
	title, color := "🎯 **GOAL ACHIEVED**", ColorGreen
	description := fmt.Sprintf("**%s** reached the goal \"%s\".", user.Name, goal.Description)

	if goal.Status == types.GoalStatusMissed {
		title, color = "⏰ **GOAL MISSED**", ColorOrange
		description = fmt.Sprintf("**%s** did not reach the goal \"%s\" by the deadline.", user.Name, goal.Description)
	}

	return DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       title,
				Description: description,
				Color:       color,
				Fields: []DiscordWebhookField{
					{Name: "🎯 Target", Value: fmt.Sprintf("%.1f", goal.TargetScore), Inline: true},
					{Name: "📊 Average", Value: achievedText(goal), Inline: true},
					{Name: "📅 Deadline", Value: goal.Deadline.UTC().Format("2006-01-02 15:04 UTC"), Inline: true},
				},
				Footer:    &DiscordFooter{Text: fmt.Sprintf("Student: %s", user.Email)},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}
}

func slackGoalPayload(user models.User, goal models.Goal) SlackWebhookRequest {
	text, color, emoji := ":dart: *GOAL ACHIEVED*", "good", ":dart:"

	if goal.Status == types.GoalStatusMissed {
		text, color, emoji = ":alarm_clock: *GOAL MISSED*", "warning", ":alarm_clock:"
	}

	return SlackWebhookRequest{
		Username:  Username,
		IconEmoji: emoji,
		Text:      text,
		Attachments: []SlackAttachment{
			{
				Color: color,
				Title: goal.Description,
				Text:  fmt.Sprintf("Goal for %s", user.Name),
				Fields: []SlackField{
					{Title: "Target", Value: fmt.Sprintf("%.1f", goal.TargetScore), Short: true},
					{Title: "Average", Value: achievedText(goal), Short: true},
					{Title: "Deadline", Value: goal.Deadline.UTC().Format("2006-01-02 15:04 UTC"), Short: false},
				},
				Footer:    user.Email,
				Timestamp: time.Now().Unix(),
			},
		},
	}
}

func (n *Notifier) post(ctx context.Context, webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
