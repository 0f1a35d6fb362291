package speech_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/kiswahili/internal/cache"
	"github.com/nikhilbhutani/kiswahili/internal/multimodal/stt"
	"github.com/nikhilbhutani/kiswahili/internal/multimodal/tts"
	"github.com/nikhilbhutani/kiswahili/internal/speech"
)

type fakeSTT struct {
	text string
	err  error
}

func (f *fakeSTT) Name() string { return "fake-stt" }

func (f *fakeSTT) Transcribe(_ context.Context, req stt.TranscriptionRequest) (*stt.TranscriptionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &stt.TranscriptionResponse{Text: f.text, Language: req.Language}, nil
}

type fakeTTS struct {
	calls atomic.Int32
	err   error
}

func (f *fakeTTS) Name() string { return "fake-tts" }

func (f *fakeTTS) Synthesize(_ context.Context, req tts.SynthesisRequest) (*tts.SynthesisResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &tts.SynthesisResult{Audio: []byte("wav:" + req.Input), ContentType: "audio/wav"}, nil
}

var errNoModel = errors.New("model file missing")

func openSTT(p stt.STTProvider, err error, attempts *atomic.Int32) speech.Opener[stt.STTProvider] {
	return func(context.Context) (stt.STTProvider, error) {
		attempts.Add(1)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func openTTS(p tts.TTSProvider, err error, attempts *atomic.Int32) speech.Opener[tts.TTSProvider] {
	return func(context.Context) (tts.TTSProvider, error) {
		attempts.Add(1)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", speech.Uninitialized.String())
	assert.Equal(t, "ready", speech.Ready.String())
	assert.Equal(t, "unavailable", speech.Unavailable.String())
}

func TestRecognizer_Ready(t *testing.T) {
	var attempts atomic.Int32
	r := speech.NewRecognizer("local", openSTT(&fakeSTT{text: " asante sana "}, nil, &attempts), "sw", speech.FallbackMock)
	assert.Equal(t, speech.Uninitialized, r.State())

	got, err := r.Recognize(context.Background(), []byte("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, "asante sana", got.Text)
	assert.False(t, got.Degraded)
	assert.Equal(t, speech.Ready, r.State())

	_, err = r.Recognize(context.Background(), []byte("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestRecognizer_EmptyTranscript(t *testing.T) {
	var attempts atomic.Int32
	r := speech.NewRecognizer("local", openSTT(&fakeSTT{text: "  "}, nil, &attempts), "sw", speech.FallbackMock)

	got, err := r.Recognize(context.Background(), []byte("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, speech.NoSpeechText, got.Text)
	assert.False(t, got.Degraded)
}

func TestRecognizer_MockFallback(t *testing.T) {
	var attempts atomic.Int32
	r := speech.NewRecognizer("whisper-cli", openSTT(nil, errNoModel, &attempts), "sw", speech.FallbackMock)

	for i := 0; i < 2; i++ {
		got, err := r.Recognize(context.Background(), []byte("RIFF"))
		require.NoError(t, err)
		assert.Equal(t, speech.MockTranscript, got.Text)
		assert.True(t, got.Degraded)
		assert.Equal(t, speech.Unavailable, r.State())
	}
	// Each call in the unavailable state retries the open exactly once.
	assert.Equal(t, int32(2), attempts.Load())
}

func TestRecognizer_ErrorFallback(t *testing.T) {
	var attempts atomic.Int32
	r := speech.NewRecognizer("whisper-cli", openSTT(nil, errNoModel, &attempts), "sw", speech.FallbackError)

	_, err := r.Recognize(context.Background(), []byte("RIFF"))
	require.ErrorIs(t, err, speech.ErrUnavailable)
	assert.Contains(t, err.Error(), errNoModel.Error())
}

func TestRecognizer_BackendFailureDegrades(t *testing.T) {
	var attempts atomic.Int32
	r := speech.NewRecognizer("openai", openSTT(&fakeSTT{err: errors.New("502 bad gateway")}, nil, &attempts), "sw", speech.FallbackMock)

	got, err := r.Recognize(context.Background(), []byte("RIFF"))
	require.NoError(t, err)
	assert.True(t, got.Degraded)
	assert.Equal(t, speech.Ready, r.State())
}

func TestRecognizer_CanceledContextIsNotMasked(t *testing.T) {
	var attempts atomic.Int32
	r := speech.NewRecognizer("openai", openSTT(&fakeSTT{err: context.Canceled}, nil, &attempts), "sw", speech.FallbackMock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Recognize(ctx, []byte("RIFF"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecognizer_RecoversAfterModelAppears(t *testing.T) {
	var (
		attempts atomic.Int32
		present  atomic.Bool
	)
	open := func(context.Context) (stt.STTProvider, error) {
		attempts.Add(1)
		if !present.Load() {
			return nil, errNoModel
		}
		return &fakeSTT{text: "jambo"}, nil
	}
	r := speech.NewRecognizer("whisper-cli", open, "sw", speech.FallbackMock)

	r.Warm(context.Background())
	assert.Equal(t, speech.Unavailable, r.State())

	present.Store(true)
	got, err := r.Recognize(context.Background(), []byte("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, "jambo", got.Text)
	assert.Equal(t, speech.Ready, r.State())
}

func TestSynthesizer_ConcurrentFirstCallsOpenOnce(t *testing.T) {
	var attempts atomic.Int32
	s := speech.NewSynthesizer("local", openTTS(&fakeTTS{}, nil, &attempts), speech.FallbackMock)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Synthesize(context.Background(), "jambo")
			assert.NoError(t, err)
			assert.Equal(t, []byte("wav:jambo"), got.Data)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), attempts.Load())
	assert.Equal(t, speech.Ready, s.State())
}

func TestSynthesizer_Fallback(t *testing.T) {
	var attempts atomic.Int32

	mock := speech.NewSynthesizer("local", openTTS(nil, errNoModel, &attempts), speech.FallbackMock)
	got, err := mock.Synthesize(context.Background(), "jambo")
	require.NoError(t, err)
	assert.True(t, got.Degraded)
	assert.Equal(t, []byte("MOCK_AUDIO_DATA"), got.Data)
	assert.Equal(t, speech.MockAudioContentType, got.ContentType)

	strict := speech.NewSynthesizer("local", openTTS(nil, errNoModel, &attempts), speech.FallbackError)
	_, err = strict.Synthesize(context.Background(), "jambo")
	require.ErrorIs(t, err, speech.ErrUnavailable)
}

func TestMockAudio_ReturnsCopy(t *testing.T) {
	a := speech.MockAudio()
	a[0] = 'X'
	assert.Equal(t, []byte("MOCK_AUDIO_DATA"), speech.MockAudio())
}

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewCache(client, "kiswahili:"), mr
}

func TestCachedSynthesizer_CachesRealAudio(t *testing.T) {
	c, mr := newTestCache(t)

	var attempts atomic.Int32
	backend := &fakeTTS{}
	s := speech.NewCachedSynthesizer(speech.NewSynthesizer("local", openTTS(backend, nil, &attempts), speech.FallbackMock), c, time.Hour)

	first, err := s.Synthesize(context.Background(), "jambo")
	require.NoError(t, err)
	second, err := s.Synthesize(context.Background(), "jambo")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), backend.calls.Load())
	assert.Len(t, mr.Keys(), 1)
	assert.Contains(t, mr.Keys()[0], "kiswahili:tts:local:")
}

func TestCachedSynthesizer_SkipsDegradedAudio(t *testing.T) {
	c, mr := newTestCache(t)

	var attempts atomic.Int32
	s := speech.NewCachedSynthesizer(speech.NewSynthesizer("local", openTTS(nil, errNoModel, &attempts), speech.FallbackMock), c, time.Hour)

	got, err := s.Synthesize(context.Background(), "jambo")
	require.NoError(t, err)
	assert.True(t, got.Degraded)
	assert.Empty(t, mr.Keys())
	assert.Equal(t, speech.Unavailable, s.State())
}

func TestCachedSynthesizer_RedisDownStillSynthesizes(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	c := cache.NewCache(client, "kiswahili:")

	var attempts atomic.Int32
	backend := &fakeTTS{}
	s := speech.NewCachedSynthesizer(speech.NewSynthesizer("local", openTTS(backend, nil, &attempts), speech.FallbackMock), c, time.Hour)

	got, err := s.Synthesize(context.Background(), "jambo")
	require.NoError(t, err)
	assert.Equal(t, []byte("wav:jambo"), got.Data)
}

func TestRecognizer_StateDoesNotWaitForOpen(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	open := func(context.Context) (stt.STTProvider, error) {
		close(started)
		<-release
		return nil, errNoModel
	}
	r := speech.NewRecognizer("openai", open, "sw", speech.FallbackMock)

	done := make(chan speech.Transcript)
	go func() {
		got, _ := r.Recognize(context.Background(), []byte("RIFF"))
		done <- got
	}()
	<-started

	states := make(chan speech.State)
	go func() { states <- r.State() }()

	select {
	case st := <-states:
		assert.Equal(t, speech.Uninitialized, st)
	case <-time.After(time.Second):
		t.Fatal("State blocked while the model was opening")
	}

	close(release)
	got := <-done
	assert.True(t, got.Degraded)
	assert.Equal(t, speech.Unavailable, r.State())
}

func TestSynthesizer_ConcurrentRetriesShareOneOpen(t *testing.T) {
	var attempts atomic.Int32
	release := make(chan struct{})
	open := func(context.Context) (tts.TTSProvider, error) {
		attempts.Add(1)
		<-release
		return nil, errNoModel
	}
	s := speech.NewSynthesizer("openai", open, speech.FallbackMock)

	const callers = 8
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Synthesize(context.Background(), "jambo")
			assert.NoError(t, err)
			assert.True(t, got.Degraded)
		}()
	}

	// Let every caller join the in-flight attempt before it finishes.
	require.Eventually(t, func() bool { return attempts.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), attempts.Load())
	assert.Equal(t, speech.Unavailable, s.State())
}

func TestRecognizer_CanceledCallerDoesNotFailSharedOpen(t *testing.T) {
	var attempts atomic.Int32
	open := func(ctx context.Context) (stt.STTProvider, error) {
		attempts.Add(1)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &fakeSTT{text: "jambo"}, nil
	}
	r := speech.NewRecognizer("openai", open, "sw", speech.FallbackMock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _ = r.Recognize(ctx, []byte("RIFF"))

	assert.Equal(t, speech.Ready, r.State())
	got, err := r.Recognize(context.Background(), []byte("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, "jambo", got.Text)
	assert.Equal(t, int32(1), attempts.Load())
}
