package services

import (
	"context"
	"errors"
	"testing"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeChatRepo struct {
	messages []*models.ChatMessage
	nextID   uint
}

func (f *fakeChatRepo) Create(_ context.Context, msg *models.ChatMessage) error {
	f.nextID++
	msg.ID = f.nextID
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeChatRepo) GetByID(_ context.Context, id uint) (*models.ChatMessage, error) {
	for _, msg := range f.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChatRepo) ListByUser(_ context.Context, userID uint) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for _, msg := range f.messages {
		if msg.UserID == userID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return f.reply, f.err
}

func TestSendMessageAppendsBothTurns(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := NewChatService(repo, &fakeCompleter{reply: "Use drip irrigation for cotton."})

	botMsg, err := svc.SendMessage(context.Background(), 1, "How should I irrigate cotton?", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "Use drip irrigation for cotton.", botMsg.Text)
	assert.Equal(t, string(domain.SenderBot), botMsg.Sender)
	assert.False(t, botMsg.IsError)

	history, err := svc.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, string(domain.SenderUser), history[0].Sender)
	assert.Equal(t, "How should I irrigate cotton?", history[0].Text)
	assert.Equal(t, string(domain.SenderBot), history[1].Sender)
}

func TestSendMessageFallsBackOnUpstreamFailure(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := NewChatService(repo, &fakeCompleter{err: errors.New("upstream down")})

	botMsg, err := svc.SendMessage(context.Background(), 1, "hello", "en-US")
	require.NoError(t, err)
	assert.Equal(t, fallbackEN, botMsg.Text)
	assert.True(t, botMsg.IsError)

	// The conversation keeps both turns even when the assistant failed
	history, _ := svc.History(context.Background(), 1)
	assert.Len(t, history, 2)
}

func TestSendMessageHindiFallback(t *testing.T) {
	svc := NewChatService(&fakeChatRepo{}, &fakeCompleter{err: errors.New("upstream down")})

	botMsg, err := svc.SendMessage(context.Background(), 1, "नमस्ते", "hi-IN")
	require.NoError(t, err)
	assert.Equal(t, fallbackHI, botMsg.Text)
}

func TestGetMessageChecksOwnership(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := NewChatService(repo, &fakeCompleter{reply: "ok"})

	botMsg, err := svc.SendMessage(context.Background(), 1, "hi", "en-US")
	require.NoError(t, err)

	got, err := svc.GetMessage(context.Background(), 1, botMsg.ID)
	require.NoError(t, err)
	assert.Equal(t, botMsg.ID, got.ID)

	// Another user cannot read the message
	_, err = svc.GetMessage(context.Background(), 2, botMsg.ID)
	assert.ErrorIs(t, err, domain.ErrChatMessageNotFound)

	_, err = svc.GetMessage(context.Background(), 1, 999)
	assert.ErrorIs(t, err, domain.ErrChatMessageNotFound)
}
