package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bindery/internal/config"
)

const userAgent = "Bindery/0.1.0"

// Event identifies a notification-worthy outcome.
type Event string

const (
	EventBuildCompleted  Event = "build_completed"
	EventBuildFailed     Event = "build_failed"
	EventImportCompleted Event = "import_completed"
	EventImportFailed    Event = "import_failed"
	EventTest            Event = "test"
)

// Payload carries the formatting values for one notification.
type Payload map[string]string

// Service is the notification surface exposed to the compiler and importer.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		build:    cfg.Notifications.Build,
		imports:  cfg.Notifications.Import,
		errors:   cfg.Notifications.Errors,
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	build    bool
	imports  bool
	errors   bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, enabled := n.format(event, payload)
	if !enabled {
		return nil
	}
	return n.send(ctx, msg)
}

func (n *ntfyService) format(event Event, payload Payload) (message, bool) {
	get := func(key, fallback string) string {
		if value := strings.TrimSpace(payload[key]); value != "" {
			return value
		}
		return fallback
	}

	switch event {
	case EventBuildCompleted:
		return message{
			title: "Bindery - Build Complete",
			body: fmt.Sprintf("📦 Built %s packs (%s entries)",
				get("packs", "?"), get("entries", "?")),
			tags: []string{"bindery", "build", "completed"},
		}, n.build
	case EventBuildFailed:
		return message{
			title:    "Bindery - Build Failed",
			body:     fmt.Sprintf("❌ Build failed: %s", get("failed", "unknown packs")),
			tags:     []string{"bindery", "build", "failed"},
			priority: "high",
		}, n.errors
	case EventImportCompleted:
		return message{
			title: "Bindery - Import Complete",
			body: fmt.Sprintf("📥 Imported %s documents across %s packs",
				get("documents", "?"), get("packs", "?")),
			tags: []string{"bindery", "import", "completed"},
		}, n.imports
	case EventImportFailed:
		return message{
			title:    "Bindery - Import Failed",
			body:     fmt.Sprintf("❌ Import failed: %s", get("failed", "unknown packs")),
			tags:     []string{"bindery", "import", "failed"},
			priority: "high",
		}, n.errors
	case EventTest:
		return message{
			title: "Bindery - Test",
			body:  "🔔 Notifications are working",
			tags:  []string{"bindery", "test"},
		}, true
	default:
		return message{}, false
	}
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
