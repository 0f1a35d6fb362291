package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/nikhilbhutani/kiswahili/internal/cache"
)

// CachedSynthesizer stores real synthesis results in redis. Placeholder
// audio is never cached.
type CachedSynthesizer struct {
	next  SpeechSynthesizer
	cache *cache.Cache
	ttl   time.Duration
}

func NewCachedSynthesizer(next SpeechSynthesizer, c *cache.Cache, ttl time.Duration) *CachedSynthesizer {
	return &CachedSynthesizer{next: next, cache: c, ttl: ttl}
}

func (c *CachedSynthesizer) Name() string { return c.next.Name() }

func (c *CachedSynthesizer) State() State { return c.next.State() }

func (c *CachedSynthesizer) Synthesize(ctx context.Context, text string) (Audio, error) {
	key := synthesisKey(c.next.Name(), text)

	var hit Audio
	err := c.cache.Get(ctx, key, &hit)
	if err == nil {
		return hit, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Debug("synthesis cache read failed", "error", err)
	}

	audio, err := c.next.Synthesize(ctx, text)
	if err != nil || audio.Degraded {
		return audio, err
	}

	if err := c.cache.Set(ctx, key, audio, c.ttl); err != nil {
		slog.Debug("synthesis cache write failed", "error", err)
	}
	return audio, nil
}

func synthesisKey(backend, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "tts:" + backend + ":" + hex.EncodeToString(sum[:])
}
