package post

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/a-h/tutorserver/models"
	"github.com/a-h/tutorserver/tutor"
)

type Replier interface {
	Reply(ctx context.Context, message string) tutor.Reply
}

func New(log *slog.Logger, replier Replier) Handler {
	return Handler{
		log:     log,
		replier: replier,
	}
}

type Handler struct {
	log     *slog.Logger
	replier Replier
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.ChatPostRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		if errors.Is(err, models.ErrMessageRequired) {
			respond.WithError(w, "message is required", http.StatusBadRequest)
			return
		}
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}

	reply := h.replier.Reply(r.Context(), req.Message)
	h.log.Info("replied to message",
		slog.Int("messageLength", len(req.Message)),
		slog.String("source", string(reply.Source)))

	respond.WithJSON(w, models.ChatPostResponse{Reply: reply.Text}, http.StatusOK)
}
