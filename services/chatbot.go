package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"petcare-chatbot/models"
)

// Canned replies for the degraded paths. Every failure leaves the
// /chat contract intact and is encoded in the response body.
const (
	replyNotConfigured  = "API key not configured."
	replyCompletionDown = "I'm having trouble right now. Please try again!"
	replyInternalError  = "Sorry, I encountered an error. Please try again!"
	maxKnowledgeRecords = 2
	maxHistoryMessages  = 6
	maxNamedProducts    = 3
)

// systemPrompt carries the shop facts, response-style rules, and
// few-shot examples that steer the model for every turn
const systemPrompt = `You are a professional pet care assistant for MPS PetCare in Sri Lanka.

SHOP INFORMATION:
- Name: MPS PetCare
- Location: 123 Pet Street, Colombo, Sri Lanka
- Contact: +94 11 234 5678, hello@mpspetcare.lk
- Services: Pet supplies, pet adoption, grooming, veterinary, pet food delivery
- We have: Dogs, cats, birds, fish, small animals

YOUR ROLE:
Answer questions about pet care, health, shop services, and help customers.

CRITICAL RULES:
- Answer DIRECTLY and CONCISELY (2-3 sentences maximum)
- Do NOT show products unless user explicitly says "BUY", "PURCHASE", or "SHOP FOR"
- If asked ABOUT products/food/items → Answer with text description
- If user wants to BUY → Say "SEARCH_PRODUCTS"

Examples:
User: "Tell me about your shop" → "MPS PetCare is a premium pet store at 123 Pet Street, Colombo. We offer supplies, adoption, grooming, and vet services for all pets."
User: "What food do you have?" → "We stock Pedigree, Royal Canin, Drools for dogs; Whiskas, Royal Canin for cats; and special diets for other pets."
User: "I want to buy dog food" → "SEARCH_PRODUCTS"
`

// Chatbot orchestrates one chat turn: knowledge retrieval, prompt
// assembly, completion, intent detection, and product lookup. It holds
// no state between requests.
type Chatbot struct {
	knowledge  KnowledgeSearcher
	products   ProductFetcher
	completion Completer
	logger     *zap.Logger
}

// NewChatbot creates a chatbot wired to the given collaborators
func NewChatbot(knowledge KnowledgeSearcher, products ProductFetcher, completion Completer, logger *zap.Logger) *Chatbot {
	return &Chatbot{
		knowledge:  knowledge,
		products:   products,
		completion: completion,
		logger:     logger,
	}
}

// ProcessMessage runs the full pipeline for one chat turn. It never
// returns an error: every failure degrades to a canned response so the
// HTTP contract stays uniform.
func (c *Chatbot) ProcessMessage(ctx context.Context, message string, history []models.ChatMessage) (response models.ChatResponse) {
	// Outer guard: a panic anywhere below becomes a canned reply,
	// with the cause logged server-side only.
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("chat pipeline panicked", zap.Any("cause", r))
			response = emptyResponse(replyInternalError)
		}
	}()

	if !c.completion.IsConfigured() {
		return emptyResponse(replyNotConfigured)
	}

	loweredMessage := strings.ToLower(message)

	records := c.searchKnowledge(ctx, message)
	knowledgeUsed := len(records) > 0
	contextBlock, sources := buildKnowledgeContext(records)

	messages := c.buildMessages(message, contextBlock, history)

	reply, err := c.completion.Complete(ctx, messages)
	if err != nil {
		// The knowledge lookup result is deliberately discarded here
		c.logger.Warn("completion failed", zap.Error(err))
		return emptyResponse(replyCompletionDown)
	}

	if hasBuyIntent(loweredMessage) || wantsProductSearch(reply) {
		products := c.fetchProducts(ctx, deriveProductFilters(loweredMessage))
		if len(products) > 0 {
			return models.ChatResponse{
				Response:      productSummary(products),
				Sources:       sources,
				Products:      products,
				KnowledgeUsed: knowledgeUsed,
			}
		}
		// Zero products despite purchase intent: the completion text
		// becomes the answer.
	}

	return models.ChatResponse{
		Response:      reply,
		Sources:       sources,
		Products:      []models.Product{},
		KnowledgeUsed: knowledgeUsed,
	}
}

// searchKnowledge swallows lookup failures to an empty result; a turn
// without knowledge is still a valid turn
func (c *Chatbot) searchKnowledge(ctx context.Context, query string) []models.KnowledgeRecord {
	records, err := c.knowledge.Search(ctx, query)
	if err != nil {
		c.logger.Warn("knowledge lookup failed", zap.Error(err))
		return nil
	}
	return records
}

// fetchProducts swallows catalog failures to an empty result
func (c *Chatbot) fetchProducts(ctx context.Context, filters map[string]string) []models.Product {
	products, err := c.products.Fetch(ctx, filters)
	if err != nil {
		c.logger.Warn("product lookup failed", zap.Error(err))
		return nil
	}
	return products
}

// buildKnowledgeContext pairs the top records' questions and answers
// into a labeled context block and collects their titles as sources
func buildKnowledgeContext(records []models.KnowledgeRecord) (string, []string) {
	sources := []string{}
	if len(records) == 0 {
		return "", sources
	}

	if len(records) > maxKnowledgeRecords {
		records = records[:maxKnowledgeRecords]
	}

	parts := make([]string, 0, len(records))
	for _, record := range records {
		parts = append(parts, fmt.Sprintf("Q: %s\nA: %s", record.Question, record.Answer))
		sources = append(sources, record.Title)
	}

	return "KNOWLEDGE:\n" + strings.Join(parts, "\n\n"), sources
}

// buildMessages assembles the completion message list in fixed order:
// system prompt, optional knowledge context, trimmed history, then the
// current user message
func (c *Chatbot) buildMessages(message, contextBlock string, history []models.ChatMessage) []models.Message {
	messages := []models.Message{
		{Role: models.RoleSystem, Content: systemPrompt},
	}

	if contextBlock != "" {
		messages = append(messages, models.Message{
			Role:    models.RoleSystem,
			Content: "Use this information:\n" + contextBlock,
		})
	}

	start := 0
	if len(history) > maxHistoryMessages {
		start = len(history) - maxHistoryMessages
	}
	for _, msg := range history[start:] {
		role := models.RoleAssistant
		if msg.Role == "human" {
			role = models.RoleUser
		}
		messages = append(messages, models.Message{Role: role, Content: msg.Content})
	}

	messages = append(messages, models.Message{Role: models.RoleUser, Content: message})

	return messages
}

// productSummary names the first 3 products comma-joined and counts
// the remainder
func productSummary(products []models.Product) string {
	named := len(products)
	if named > maxNamedProducts {
		named = maxNamedProducts
	}

	names := make([]string, 0, named)
	for _, product := range products[:named] {
		names = append(names, product.Name())
	}

	summary := "Here are some products for you:\n" + strings.Join(names, ", ")
	if len(products) > maxNamedProducts {
		summary += fmt.Sprintf(", and %d more!", len(products)-maxNamedProducts)
	}

	return summary
}

func emptyResponse(text string) models.ChatResponse {
	return models.ChatResponse{
		Response:      text,
		Sources:       []string{},
		Products:      []models.Product{},
		KnowledgeUsed: false,
	}
}
