package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePullRequest WebhookEventType = "pull_request"
	EventTypePing        WebhookEventType = "ping"
	EventTypeUnknown     WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook delivery as it was received. RawPayload
// must hold the exact request bytes; the signature is computed over them.
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Signature  string           // Retrieved from X-Hub-Signature header
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}
