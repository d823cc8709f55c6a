package http

import (
	"net/http"

	"github.com/m-mizutani/prbuild/pkg/domain/types"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, &healthResponse{
		Status:  "healthy",
		Service: types.ServiceName,
		Version: types.Version,
	})
}
