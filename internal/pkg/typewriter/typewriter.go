package typewriter

import (
	"context"
	"time"
)

// DefaultInterval is the delay between revealed characters
const DefaultInterval = 15 * time.Millisecond

// Typewriter reveals text one character at a time on a fixed interval,
// independent of how fast the text was produced upstream.
type Typewriter struct {
	interval time.Duration
}

// New creates a typewriter with the given per-character interval.
// Non-positive intervals fall back to DefaultInterval.
func New(interval time.Duration) *Typewriter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Typewriter{interval: interval}
}

// Type emits the text rune by rune, calling emit once per interval tick.
// It returns after the final rune has been emitted, so completion never
// happens earlier than len(runes) intervals. Cancelling the context stops
// the animation and returns ctx.Err().
func (t *Typewriter) Type(ctx context.Context, text string, emit func(chunk string) error) error {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for _, r := range runes {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := emit(string(r)); err != nil {
				return err
			}
		}
	}

	return nil
}

// Stream is a channel-based variant of Type. The returned channel is
// closed when the full text has been emitted or the context is cancelled.
func (t *Typewriter) Stream(ctx context.Context, text string) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)
		_ = t.Type(ctx, text, func(chunk string) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case out <- chunk:
				return nil
			}
		})
	}()

	return out
}
