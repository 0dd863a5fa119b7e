package webhook

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/hatch"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/rarity"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/settings"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/storage"
)

// maxBodyBytes caps inbound webhook bodies at 1 MB
const maxBodyBytes = 1 << 20

// Server receives hatch notification webhooks and records them
type Server struct {
	repo     *storage.Repository
	resolver *settings.Resolver
	srv      *http.Server
}

// NewServer creates the webhook HTTP server listening on addr
func NewServer(addr string, repo *storage.Repository, resolver *settings.Resolver) *Server {
	s := &Server{repo: repo, resolver: resolver}

	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Post("/webhook", s.handleWebhook)

	s.srv = &http.Server{Addr: addr, Handler: r}
	return s
}

// Start begins serving in a background goroutine
func (s *Server) Start() {
	go func() {
		slog.Info("Webhook server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Webhook server failed", "error", err)
		}
	}()
}

// Stop shuts the server down
func (s *Server) Stop() error {
	return s.srv.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleWebhook ingests one hatch notification. Extraction never fails: a
// payload that yields nothing still records a default event. Only JSON
// parse errors and store failures produce a 500.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	deliveryID := uuid.New().String()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		slog.Error("Failed to read webhook body", "delivery", deliveryID, "error", err)
		http.Error(w, "invalid payload", http.StatusInternalServerError)
		return
	}
	if !json.Valid(body) {
		slog.Error("Failed to parse webhook body", "delivery", deliveryID)
		http.Error(w, "invalid payload", http.StatusInternalServerError)
		return
	}

	// Valid JSON in an unrecognized shape is not an error: it degrades to
	// full defaults and still records an event
	var payload hatch.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Warn("Unrecognized payload shape", "delivery", deliveryID, "error", err)
		payload = hatch.Payload{}
	}

	name, weight := hatch.Interpret(payload)

	var tier string
	if t, ok := rarity.Classify(weight); ok {
		tier = string(t)
	}

	guildID := storage.UnknownGuildID
	if id, ok, err := s.resolver.GuildForChannel(payload.ChannelID); err != nil {
		slog.Error("Failed to attribute delivery", "delivery", deliveryID, "error", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	} else if ok {
		guildID = id
	}

	event := &storage.HatchEvent{
		GuildID:     guildID,
		SubjectName: name,
		WeightKg:    weight,
		RarityTier:  tier,
	}
	if err := s.repo.InsertHatchEvent(event); err != nil {
		slog.Error("Failed to record hatch", "delivery", deliveryID, "error", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	slog.Info("Recorded hatch",
		"delivery", deliveryID,
		"guild", guildID,
		"subject", name,
		"weight", weight,
		"tier", tier,
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "delivery_id": deliveryID})
}
