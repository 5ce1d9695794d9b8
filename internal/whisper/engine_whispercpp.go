//go:build whisper_cpp

package whisper

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	whisperpkg "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/rs/zerolog/log"
)

// EngineCPP is the whisper.cpp-backed implementation of Engine.
type EngineCPP struct {
	model   whisperpkg.Model
	threads uint
	mu      sync.Mutex // whisper.cpp contexts share model state; serialize decoding
}

// NewEngine loads a ggml model from modelPath. Feature extraction uses every
// available core; encode/decode run on the accelerated backend the binding
// selected at build time, falling back to CPU.
func NewEngine(modelPath string) (Engine, error) {
	threads := uint(runtime.NumCPU())

	m, err := whisperpkg.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	log.Info().Str("model", modelPath).Uint("threads", threads).Msg("whisper: model loaded")
	return &EngineCPP{
		model:   m,
		threads: threads,
	}, nil
}

func (e *EngineCPP) Close() error {
	if e.model != nil {
		e.model.Close()
	}
	return nil
}

// Transcribe runs the fixed decode policy over the samples: voice-activity
// chunks decoded in order, greedy single pass, blank segments dropped.
// Segment timestamps are rebased onto the original clip before emission.
func (e *EngineCPP) Transcribe(samples []float32, opts DecodeOptions, onSegment func(Segment)) error {
	if len(samples) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ch := range splitOnSilence(samples) {
		if err := e.decodeChunk(ch, opts, onSegment); err != nil {
			return err
		}
	}
	return nil
}

func (e *EngineCPP) decodeChunk(ch chunk, opts DecodeOptions, onSegment func(Segment)) error {
	ctx, err := e.model.NewContext()
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	applyDecodePolicy(ctx, e.threads, opts)

	base := ch.startSeconds()
	segCB := func(seg whisperpkg.Segment) {
		text := seg.Text
		if opts.SuppressTokens {
			text = stripControlTokens(text)
		}
		text = strings.TrimSpace(text)
		if opts.SuppressBlank && text == "" {
			return
		}
		onSegment(Segment{
			Text:  text,
			Start: base + seg.Start.Seconds(),
			End:   base + seg.End.Seconds(),
		})
	}

	if err := ctx.Process(ch.samples, nil, segCB, nil); err != nil {
		log.Error().Err(err).Int("samples", len(ch.samples)).Msg("whisper: process failed")
		return fmt.Errorf("process audio: %w", err)
	}
	return nil
}
