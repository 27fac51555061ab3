package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"petcare-chatbot/models"
	"petcare-chatbot/services"
)

// Controller wires HTTP handlers to the chat pipeline
type Controller struct {
	chatbot *services.Chatbot
	discord *services.DiscordService
	model   string
	logger  *zap.Logger
}

// NewController creates a controller around an assembled chatbot
func NewController(chatbot *services.Chatbot, discord *services.DiscordService, model string, logger *zap.Logger) *Controller {
	return &Controller{
		chatbot: chatbot,
		discord: discord,
		model:   model,
		logger:  logger,
	}
}

// StartServices starts background surfaces (the Discord bot)
func (c *Controller) StartServices() error {
	if c.discord.IsEnabled() {
		return c.discord.Start()
	}
	return nil
}

// StopServices stops background surfaces
func (c *Controller) StopServices() error {
	return c.discord.Stop()
}

// IndexHandler is the liveness/identity probe
func (c *Controller) IndexHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "🐾 MPS PetCare AI Chatbot API",
		"status":  "running",
		"model":   c.model,
	})
}

// HealthHandler provides a health check endpoint
func (c *Controller) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ChatHandler processes one chat turn. Internal failures never surface
// as HTTP errors; the pipeline encodes them in the response body, so a
// well-formed request always gets a 200.
func (c *Controller) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format"})
		return
	}

	response := c.chatbot.ProcessMessage(r.Context(), req.Message, req.History)

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
