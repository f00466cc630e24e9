package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ChatError{Error: message})
}
