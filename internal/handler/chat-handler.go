package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jacobxo0/AIforsikring-sub002/internal/middleware"
	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
	"github.com/jacobxo0/AIforsikring-sub002/internal/usecase"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 1 << 20

type Relayer interface {
	Relay(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	relay Relayer
	log   *zap.Logger
}

func NewChatHandler(relay Relayer, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		relay: relay,
		log:   log,
	}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.MessageInvalidRequestBody)
		return
	}

	reply, err := h.relay.Relay(r.Context(), req.Message)
	if err != nil {
		var relayErr *usecase.RelayError
		if errors.As(err, &relayErr) {
			writeError(w, relayErr.Status, relayErr.Message)
			return
		}
		h.log.Error(
			"unexpected relay error",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, usecase.MessageNoResponseFromAI)
		return
	}

	writeJSON(w, http.StatusOK, model.ChatReply{Reply: reply})
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
