package typewriter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_FullTextDelivered(t *testing.T) {
	tw := New(time.Millisecond)

	var sb strings.Builder
	err := tw.Type(context.Background(), "hello, farmer", func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "hello, farmer", sb.String())
}

func TestType_CompletionNotEarlierThanIntervalPerRune(t *testing.T) {
	const text = "abcde"
	interval := 15 * time.Millisecond
	tw := New(interval)

	start := time.Now()
	err := tw.Type(context.Background(), text, func(string) error { return nil })
	elapsed := time.Since(start)

	require.NoError(t, err)
	minimum := time.Duration(len([]rune(text))) * interval
	assert.GreaterOrEqual(t, elapsed, minimum,
		"completion fired before every character had its interval")
}

func TestType_EmptyText(t *testing.T) {
	tw := New(time.Millisecond)

	calls := 0
	err := tw.Type(context.Background(), "", func(string) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestType_CancelledContextStopsAnimation(t *testing.T) {
	tw := New(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	var sb strings.Builder
	errCh := make(chan error, 1)

	go func() {
		errCh <- tw.Type(ctx, strings.Repeat("x", 1000), func(chunk string) error {
			sb.WriteString(chunk)
			return nil
		})
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("typewriter did not stop after cancellation")
	}

	assert.Less(t, sb.Len(), 1000)
}

func TestStream_DeliversAllRunesInOrder(t *testing.T) {
	tw := New(time.Millisecond)

	var sb strings.Builder
	for chunk := range tw.Stream(context.Background(), "चावल और गेहूं") {
		sb.WriteString(chunk)
	}

	assert.Equal(t, "चावल और गेहूं", sb.String())
}

func TestNew_NonPositiveIntervalUsesDefault(t *testing.T) {
	tw := New(0)
	assert.Equal(t, DefaultInterval, tw.interval)

	tw = New(-time.Second)
	assert.Equal(t, DefaultInterval, tw.interval)
}
