package get

import (
	"net/http"

	"github.com/a-h/respond"
	"github.com/a-h/tutorserver/models"
)

// New creates the health handler. apiKeyConfigured reports whether the
// completion API credential was loaded at startup.
func New(apiKeyConfigured bool) Handler {
	return Handler{
		apiKeyConfigured: apiKeyConfigured,
	}
}

type Handler struct {
	apiKeyConfigured bool
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, models.HealthGetResponse{
		Status:           "healthy",
		APIKeyConfigured: h.apiKeyConfigured,
	}, http.StatusOK)
}
