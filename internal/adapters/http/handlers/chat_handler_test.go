package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeChatRepo struct {
	messages []*models.ChatMessage
}

func (f *fakeChatRepo) Create(_ context.Context, msg *models.ChatMessage) error {
	msg.ID = uint(len(f.messages) + 1)
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeChatRepo) GetByID(_ context.Context, id uint) (*models.ChatMessage, error) {
	for _, m := range f.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChatRepo) ListByUser(_ context.Context, userID uint) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for _, m := range f.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newStreamTestApp(userID uint, messages ...*models.ChatMessage) *fiber.App {
	repo := &fakeChatRepo{messages: messages}
	handler := NewChatHandler(services.NewChatService(repo, nil))

	app := fiber.New()
	app.Get("/chat/stream/:messageID", func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}, handler.Stream)
	return app
}

// reassembleSSE replays the stream the way an EventSource client does:
// data lines within one event join with a newline, events concatenate.
func reassembleSSE(body string) string {
	var out strings.Builder
	for _, event := range strings.Split(body, "\n\n") {
		var data []string
		for _, line := range strings.Split(event, "\n") {
			if line == "event: done" {
				return out.String()
			}
			if strings.HasPrefix(line, "data:") {
				data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			}
		}
		out.WriteString(strings.Join(data, "\n"))
	}
	return out.String()
}

func TestStreamDeliversTextVerbatim(t *testing.T) {
	msg := &models.ChatMessage{ID: 1, UserID: 7, Sender: "bot", Text: "Rotate your crops.\nIrrigate at dawn."}
	app := newStreamTestApp(7, msg)

	req := httptest.NewRequest("GET", "/chat/stream/1", nil)
	resp, err := app.Test(req, 15000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Newlines in the stored reply must survive the SSE framing
	assert.Equal(t, msg.Text, reassembleSSE(string(body)))
	assert.Contains(t, string(body), "event: done")
}

func TestStreamUnknownMessage(t *testing.T) {
	app := newStreamTestApp(7)

	req := httptest.NewRequest("GET", "/chat/stream/99", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStreamForeignMessage(t *testing.T) {
	msg := &models.ChatMessage{ID: 1, UserID: 8, Sender: "bot", Text: "not yours"}
	app := newStreamTestApp(7, msg)

	req := httptest.NewRequest("GET", "/chat/stream/1", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
