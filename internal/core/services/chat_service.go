package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"

	"github.com/hashicorp/go-retryablehttp"
)

// ============================================================
// Chat Service - farming assistant backed by an LLM API
// ============================================================

// ChatCompleter produces an assistant reply for a user message
type ChatCompleter interface {
	Complete(ctx context.Context, language, userMessage string) (string, error)
}

// System prompts per supported language
const (
	systemPromptEN = "You are an agricultural assistant for Indian farmers. Answer questions about crops, soil, irrigation, weather and farm credit in clear, simple English. Keep answers practical and under 200 words."
	systemPromptHI = "आप भारतीय किसानों के लिए एक कृषि सहायक हैं। फसलों, मिट्टी, सिंचाई, मौसम और कृषि ऋण के बारे में सरल हिंदी में उत्तर दें। उत्तर व्यावहारिक और 200 शब्दों से कम रखें।"
)

// Fallback replies stored when the upstream assistant is unavailable
const (
	fallbackEN = "Sorry, I am having trouble answering right now. Please try again in a moment."
	fallbackHI = "क्षमा करें, मैं अभी उत्तर नहीं दे पा रहा हूँ। कृपया थोड़ी देर बाद पुनः प्रयास करें।"
)

// ChatService stores the append-only conversation and generates replies
type ChatService struct {
	chatRepo  repositories.ChatRepository
	completer ChatCompleter
}

// NewChatService creates a new chat service
func NewChatService(chatRepo repositories.ChatRepository, completer ChatCompleter) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		completer: completer,
	}
}

// History returns the user's conversation in insertion order
func (s *ChatService) History(ctx context.Context, userID uint) ([]*models.ChatMessage, error) {
	return s.chatRepo.ListByUser(ctx, userID)
}

// GetMessage returns one of the user's messages (for typed delivery)
func (s *ChatService) GetMessage(ctx context.Context, userID, messageID uint) (*models.ChatMessage, error) {
	msg, err := s.chatRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, domain.ErrChatMessageNotFound
	}
	if msg.UserID != userID {
		return nil, domain.ErrChatMessageNotFound
	}
	return msg, nil
}

// SendMessage appends the user message, asks the assistant for a reply and
// appends that too. An upstream failure still appends a reply: the
// per-language fallback text flagged as an error, so the conversation
// never loses a turn.
func (s *ChatService) SendMessage(ctx context.Context, userID uint, text, language string) (*models.ChatMessage, error) {
	// 1. Append the user's message
	userMsg := &models.ChatMessage{
		UserID: userID,
		Text:   text,
		Sender: string(domain.SenderUser),
	}
	if err := s.chatRepo.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	// 2. Generate the reply
	reply, err := s.completer.Complete(ctx, language, text)
	isError := false
	if err != nil {
		log.Printf("⚠️ Chat completion failed for user %d: %v", userID, err)
		reply = fallbackReply(language)
		isError = true
	}

	// 3. Append the bot's message
	botMsg := &models.ChatMessage{
		UserID:  userID,
		Text:    reply,
		Sender:  string(domain.SenderBot),
		IsError: isError,
	}
	if err := s.chatRepo.Create(ctx, botMsg); err != nil {
		return nil, err
	}

	return botMsg, nil
}

func fallbackReply(language string) string {
	if language == "hi-IN" {
		return fallbackHI
	}
	return fallbackEN
}

// ============================================================
// LLM client
// ============================================================

// LLMClient calls an OpenAI-compatible chat completions endpoint
type LLMClient struct {
	cfg        config.ChatConfig
	httpClient *http.Client
}

// NewLLMClient creates a chat completions client with retries
func NewLLMClient(cfg config.ChatConfig) *LLMClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 1
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &LLMClient{
		cfg:        cfg,
		httpClient: rc.StandardClient(),
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete generates an assistant reply
func (c *LLMClient) Complete(ctx context.Context, language, userMessage string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("chat assistant not configured")
	}

	systemPrompt := systemPromptEN
	if language == "hi-IN" {
		systemPrompt = systemPromptHI
	}

	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.7,
		MaxTokens:   c.cfg.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("response carries no choices")
	}

	return result.Choices[0].Message.Content, nil
}
