package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/jsonapi"
	"github.com/a-h/tutorserver/models"
	"github.com/google/go-cmp/cmp"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		var req models.ChatPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(models.ChatPostResponse{Reply: "echo: " + req.Message})
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"Teacher Chatbot API is running!"}`)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"healthy","api_key_configured":true}`)
	})
	s := httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func TestChatPost(t *testing.T) {
	s := newTestServer(t)
	for _, baseURL := range []string{s.URL, s.URL + "/"} {
		t.Run(baseURL, func(t *testing.T) {
			c := New(baseURL)
			resp, err := c.ChatPost(context.Background(), models.ChatPostRequest{Message: "hello"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(models.ChatPostResponse{Reply: "echo: hello"}, resp); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestRootGet(t *testing.T) {
	c := New(newTestServer(t).URL)
	resp, err := c.RootGet(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "Teacher Chatbot API is running!" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestHealthGet(t *testing.T) {
	c := New(newTestServer(t).URL)
	resp, err := c.HealthGet(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := models.HealthGetResponse{Status: "healthy", APIKeyConfigured: true}
	if diff := cmp.Diff(expected, resp); diff != "" {
		t.Error(diff)
	}
}

func TestGetReturnsStatusErrors(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer s.Close()

	_, err := New(s.URL).HealthGet(context.Background())
	var ise jsonapi.InvalidStatusError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}
	if ise.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, ise.Status)
	}
}

func TestInvalidBaseURL(t *testing.T) {
	_, err := New("").ChatPost(context.Background(), models.ChatPostRequest{Message: "hi"})
	if err == nil {
		t.Error("expected error, got nil")
	}
}

func TestGetErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "missing routes are not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("expected ErrNotFound, got %v", err)
				}
			},
		},
		{
			name: "invalid JSON is reported",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"status":`)
			},
			check: func(t *testing.T, err error) {
				var ije jsonapi.InvalidJSONError
				if !errors.As(err, &ije) {
					t.Errorf("expected InvalidJSONError, got %v", err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := httptest.NewServer(tt.handler)
			defer s.Close()
			c := New(s.URL)

			_, err := c.RootGet(context.Background())
			tt.check(t, err)
			_, err = c.HealthGet(context.Background())
			tt.check(t, err)
		})
	}
}
