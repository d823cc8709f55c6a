package http

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// WebhookHandler handles GitHub webhooks
type WebhookHandler struct {
	buildUC interfaces.BuildUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(buildUC interfaces.BuildUseCase) *WebhookHandler {
	return &WebhookHandler{
		buildUC: buildUC,
	}
}

// Handle starts a build for a pull request webhook. Signature verification
// happens in the use case over the untouched request body.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	event := &model.WebhookEvent{
		ID:         r.Header.Get("X-GitHub-Delivery"),
		Type:       model.WebhookEventType(r.Header.Get("X-GitHub-Event")),
		Signature:  r.Header.Get("X-Hub-Signature"),
		ReceivedAt: time.Now(),
		RawPayload: body,
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Type == "" {
		event.Type = model.EventTypeUnknown
	}

	ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("delivery_id", event.ID, "event_type", event.Type))

	result, err := h.buildUC.StartBuild(ctx, event)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}
