package routes

import (
	"color-splash/internal/storage"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

type ArtifactsResponse struct {
	Artifacts []storage.Artifact `json:"artifacts"`
}

func ListArtifacts(storageClient storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifacts, err := storageClient.List(r.Context(), r.URL.Query().Get("prefix"))
		if err != nil {
			slog.Error(fmt.Sprintf("failed to list artifacts: %s", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		b, err := json.Marshal(ArtifactsResponse{Artifacts: artifacts})
		if err != nil {
			slog.Error(fmt.Sprintf("failed to marshal json: %s", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
