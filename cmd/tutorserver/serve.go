package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chatpost "github.com/a-h/tutorserver/handlers/chat/post"
	healthget "github.com/a-h/tutorserver/handlers/health/get"
	rootget "github.com/a-h/tutorserver/handlers/root/get"
	"github.com/a-h/tutorserver/mistral"
	"github.com/a-h/tutorserver/tutor"
	"github.com/rs/cors"
)

type ServeCommand struct {
	MistralAPIKey string        `help:"The Mistral API key." env:"MISTRAL_API_KEY" required:""`
	MistralURL    string        `help:"Override the Mistral chat completions URL, for testing or a proxy." env:"MISTRAL_URL" default:"https://api.mistral.ai/v1/chat/completions"`
	Model         string        `help:"Override the model to chat with." env:"MISTRAL_MODEL" default:"mistral-large-latest"`
	Timeout       time.Duration `help:"The timeout for each completion request." env:"MISTRAL_TIMEOUT" default:"30s"`
	ListenAddr    string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"127.0.0.1:8000"`
	TLSCertFile   string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile    string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel      string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

var ErrMissingAPIKey = errors.New("the Mistral API key is required, set MISTRAL_API_KEY")

// remoteTimeout is the timeout the completion client applies to each request.
func (c ServeCommand) remoteTimeout() time.Duration {
	if c.Timeout <= 0 {
		return mistral.DefaultTimeout
	}
	return c.Timeout
}

// writeTimeout leaves room to write the fallback reply after a completion times out.
func (c ServeCommand) writeTimeout() time.Duration {
	return c.remoteTimeout() + 15*time.Second
}

func (c ServeCommand) handler(log *slog.Logger) (http.Handler, error) {
	if c.MistralAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	log.Info("creating LLM client", slog.String("url", c.MistralURL), slog.String("model", c.Model), slog.Duration("timeout", c.remoteTimeout()))
	llm, err := mistral.New(c.MistralAPIKey,
		mistral.WithEndpoint(c.MistralURL),
		mistral.WithModel(c.Model),
		mistral.WithTimeout(c.remoteTimeout()))
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM: %w", err)
	}

	mux := http.NewServeMux()

	cph := chatpost.New(log, tutor.New(log, llm))
	mux.Handle("POST /chat", cph)

	mux.Handle("GET /{$}", rootget.New())
	mux.Handle("GET /health", healthget.New(c.MistralAPIKey != ""))

	return cors.AllowAll().Handler(mux), nil
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	h, err := c.handler(log)
	if err != nil {
		return err
	}

	s := &http.Server{
		Addr:        c.ListenAddr,
		Handler:     h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: c.writeTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down", slog.Any("error", err))
		}
	}()

	log.Info("Listening", slog.String("addr", c.ListenAddr))
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		err = s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	} else {
		err = s.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
