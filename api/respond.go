package api

import (
	"encoding/json"
	"net/http"

	"log/slog"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeMessage emits the {"message": ...} envelope used by the schedule
// endpoints.
func writeMessage(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, map[string]string{"message": msg}, status)
}
