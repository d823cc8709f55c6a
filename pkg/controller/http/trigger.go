package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// TriggerHandler serves the scheduler-driven status check and completion triggers
type TriggerHandler struct {
	buildUC interfaces.BuildUseCase
}

// NewTriggerHandler creates a new TriggerHandler
func NewTriggerHandler(buildUC interfaces.BuildUseCase) *TriggerHandler {
	return &TriggerHandler{buildUC: buildUC}
}

// HandleStatus accepts {"build":{"id":...}, ...} and responds with the same
// document where "build" is replaced by the current build record.
func (h *TriggerHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid JSON body"), http.StatusBadRequest)
		return
	}

	var build struct {
		ID string `json:"id"`
	}
	if raw, ok := doc["build"]; ok {
		if err := json.Unmarshal(raw, &build); err != nil {
			writeError(ctx, w, goerr.Wrap(err, "invalid build"), http.StatusBadRequest)
			return
		}
	}
	if build.ID == "" {
		writeError(ctx, w, goerr.New("build.id is required"), http.StatusBadRequest)
		return
	}

	record, err := h.buildUC.CheckStatus(ctx, build.ID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	raw, err := json.Marshal(record)
	if err != nil {
		handleError(ctx, w, goerr.Wrap(err, "failed to marshal build record"))
		return
	}
	doc["build"] = raw

	writeJSON(ctx, w, http.StatusOK, doc)
}

// HandleComplete accepts {"pull_request":..., "build":{...}} and publishes
// the matching commit status. It has no response body.
func (h *TriggerHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var prBuild model.PRBuild
	if err := json.NewDecoder(r.Body).Decode(&prBuild); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid JSON body"), http.StatusBadRequest)
		return
	}
	if prBuild.PullRequest == nil || prBuild.Build == nil {
		writeError(ctx, w, goerr.New("pull_request and build are required"), http.StatusBadRequest)
		return
	}

	if err := h.buildUC.Reconcile(ctx, &prBuild); err != nil {
		handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
