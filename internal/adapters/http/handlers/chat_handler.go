package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/response"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/typewriter"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// ChatHandler handles the farming assistant endpoints
type ChatHandler struct {
	chatService *services.ChatService
	writer      *typewriter.Typewriter
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		writer:      typewriter.New(typewriter.DefaultInterval),
	}
}

// SendMessageRequest represents chat message request body
type SendMessageRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// History returns the user's conversation
// @Summary Chat history
// @Description Get the user's conversation in insertion order
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /chat/messages [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	messages, err := h.chatService.History(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get chat history")
	}

	return response.Success(c, "Chat history retrieved successfully", fiber.Map{
		"messages": messages,
		"count":    len(messages),
	})
}

// SendMessage sends a message to the assistant
// @Summary Send chat message
// @Description Append the user message and generate the assistant's reply. An upstream failure still returns a fallback reply.
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendMessageRequest true "Message text and language"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /chat/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return response.BadRequest(c, "Message text is required")
	}

	reply, err := h.chatService.SendMessage(c.Context(), userID, text, req.Language)
	if err != nil {
		return response.InternalServerError(c, "Failed to send message")
	}

	return response.Created(c, "Message sent successfully", reply)
}

// Stream delivers a stored reply as a typed SSE stream
// @Summary Stream chat message
// @Description Replay a stored assistant reply character by character as server-sent events
// @Tags Chat
// @Produce text/event-stream
// @Security BearerAuth
// @Param messageID path int true "Message ID"
// @Success 200 {string} string "SSE stream"
// @Failure 404 {object} response.Response
// @Router /chat/stream/{messageID} [get]
func (h *ChatHandler) Stream(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	messageID, err := c.ParamsInt("messageID")
	if err != nil || messageID <= 0 {
		return response.BadRequest(c, "Invalid message ID")
	}

	msg, err := h.chatService.GetMessage(c.Context(), userID, uint(messageID))
	if err != nil {
		if errors.Is(err, domain.ErrChatMessageNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to load message")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	// The fiber context is gone once the stream writer runs, so the text
	// and a bounded context are captured up front
	text := msg.Text
	budget := time.Duration(len([]rune(text)))*typewriter.DefaultInterval + 10*time.Second

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithTimeout(context.Background(), budget)
		defer cancel()

		err := h.writer.Type(ctx, text, func(chunk string) error {
			if err := writeChunk(w, chunk); err != nil {
				return err
			}
			return w.Flush()
		})
		if err != nil {
			return // client went away or budget elapsed
		}

		fmt.Fprint(w, "event: done\ndata: \n\n")
		w.Flush()
	}))

	return nil
}

// writeChunk frames one chunk as an SSE data block. A newline in the
// chunk becomes an extra data: line, which the client joins back with a
// newline, so the reassembled text matches the stored text exactly.
func writeChunk(w *bufio.Writer, chunk string) error {
	_, err := fmt.Fprintf(w, "data: %s\n\n", strings.ReplaceAll(chunk, "\n", "\ndata: "))
	return err
}
