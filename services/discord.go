package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"petcare-chatbot/models"
)

// discordMessageLimit is Discord's hard cap per message
const discordMessageLimit = 2000

// DiscordService exposes the storefront assistant as a prefix-triggered
// Discord bot. It reuses the same chat pipeline as the HTTP surface.
type DiscordService struct {
	session       *discordgo.Session
	chatbot       *Chatbot
	commandPrefix string
	enabled       bool
	logger        *zap.Logger
}

// NewDiscordService creates the Discord surface. An empty token leaves
// the service disabled; the HTTP surface is unaffected.
func NewDiscordService(token, commandPrefix string, chatbot *Chatbot, logger *zap.Logger) *DiscordService {
	service := &DiscordService{
		chatbot:       chatbot,
		commandPrefix: commandPrefix,
		logger:        logger,
	}

	if token == "" {
		logger.Info("discord bot disabled, no token configured")
		return service
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		logger.Error("failed to create discord session", zap.Error(err))
		return service
	}

	session.AddHandler(func(s *discordgo.Session, event *discordgo.Ready) {
		logger.Info("discord bot online",
			zap.String("username", event.User.Username),
			zap.Int("guilds", len(event.Guilds)))
	})
	session.AddHandler(service.messageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	service.session = session
	service.enabled = true

	return service
}

// Start opens the Discord websocket connection
func (d *DiscordService) Start() error {
	if !d.enabled {
		return fmt.Errorf("discord service not enabled (missing bot token)")
	}
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("error opening discord connection: %w", err)
	}
	d.logger.Info("discord bot started", zap.String("prefix", d.commandPrefix))
	return nil
}

// Stop closes the Discord connection
func (d *DiscordService) Stop() error {
	if d.session != nil {
		return d.session.Close()
	}
	return nil
}

// IsEnabled reports whether the bot has a usable session
func (d *DiscordService) IsEnabled() bool {
	return d.enabled
}

// messageCreate handles incoming Discord messages that carry the
// command prefix, feeding them through the chat pipeline
func (d *DiscordService) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, d.commandPrefix) {
		return
	}

	message := strings.TrimSpace(m.Content[len(d.commandPrefix):])
	if message == "" {
		d.sendMessage(s, m.ChannelID, fmt.Sprintf("Please provide a message after `%s`", strings.TrimSpace(d.commandPrefix)))
		return
	}

	s.ChannelTyping(m.ChannelID)

	history := d.channelHistory(s, m.ChannelID, m.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	response := d.chatbot.ProcessMessage(ctx, message, history)
	d.sendMessage(s, m.ChannelID, response.Response)

	d.logger.Info("discord chat turn",
		zap.String("user", m.Author.Username),
		zap.String("channel", m.ChannelID),
		zap.Bool("knowledge_used", response.KnowledgeUsed),
		zap.Int("products", len(response.Products)))
}

// channelHistory converts recent channel messages into chat history.
// Bot messages become assistant turns; everything else becomes human
// turns, matching the role mapping the pipeline applies.
func (d *DiscordService) channelHistory(s *discordgo.Session, channelID, beforeID string) []models.ChatMessage {
	messages, err := s.ChannelMessages(channelID, maxHistoryMessages, beforeID, "", "")
	if err != nil {
		d.logger.Warn("failed to fetch channel history", zap.Error(err))
		return nil
	}

	var history []models.ChatMessage
	// ChannelMessages returns newest first; walk backwards for
	// chronological order.
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		content := strings.TrimSpace(msg.Content)
		if content == "" || strings.HasPrefix(content, d.commandPrefix) {
			continue
		}

		role := "human"
		if msg.Author.Bot {
			role = "assistant"
		}
		history = append(history, models.ChatMessage{Role: role, Content: content})
	}

	return history
}

// sendMessage sends a reply, splitting it when it exceeds Discord's
// message length limit
func (d *DiscordService) sendMessage(s *discordgo.Session, channelID, message string) {
	for _, chunk := range splitMessage(message, discordMessageLimit) {
		if _, err := s.ChannelMessageSend(channelID, chunk); err != nil {
			d.logger.Warn("failed to send discord message", zap.Error(err))
		}
	}
}

// splitMessage splits a message into chunks respecting word boundaries
func splitMessage(message string, maxLength int) []string {
	if len(message) <= maxLength {
		return []string{message}
	}

	var chunks []string
	for len(message) > maxLength {
		splitIndex := maxLength
		if spaceIndex := strings.LastIndex(message[:maxLength], " "); spaceIndex > maxLength/2 {
			splitIndex = spaceIndex
		}

		chunks = append(chunks, message[:splitIndex])
		message = strings.TrimPrefix(message[splitIndex:], " ")
	}

	if len(message) > 0 {
		chunks = append(chunks, message)
	}

	return chunks
}
