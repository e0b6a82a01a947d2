package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"netboxbot/core/log"
)

const rootMessage = "NetBox Search Bot is running!"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/", h.HandleRoot).Methods("GET")
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
}

// HandleRoot reports that the process is alive
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": rootMessage})
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("❌ Failed to write JSON response", "error", err)
	}
}
