package get

import (
	"net/http"

	"github.com/a-h/respond"
	"github.com/a-h/tutorserver/models"
)

const Message = "Teacher Chatbot API is running!"

func New() Handler {
	return Handler{}
}

type Handler struct{}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, models.RootGetResponse{Message: Message}, http.StatusOK)
}
