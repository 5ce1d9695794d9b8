package bridge

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/obiente/translate/speechbridge/internal/whisper"
)

// Handle identifies a context across the boundary. Handles are never reused
// within one Bridge instance.
type Handle int64

// contextState bundles the model source, the optional fixed language and the
// lazily built engine. The engine slot transitions empty -> populated exactly
// once; a failed construction leaves it empty so the next call retries.
type contextState struct {
	modelPath string
	modelName string
	language  string

	// Single-flight guard: concurrent first users of the handle await one
	// in-flight construction instead of racing duplicate downloads.
	initGroup singleflight.Group

	mu     sync.Mutex
	engine whisper.Engine
}

func (c *contextState) resolveEngine(factory EngineFactory) (whisper.Engine, error) {
	c.mu.Lock()
	if c.engine != nil {
		eng := c.engine
		c.mu.Unlock()
		return eng, nil
	}
	c.mu.Unlock()

	v, err, _ := c.initGroup.Do("engine", func() (any, error) {
		c.mu.Lock()
		if c.engine != nil {
			eng := c.engine
			c.mu.Unlock()
			return eng, nil
		}
		c.mu.Unlock()

		eng, err := factory(c.modelPath, c.modelName)
		if err != nil {
			// not cached: construction failure is retryable
			return nil, err
		}
		c.mu.Lock()
		c.engine = eng
		c.mu.Unlock()
		return eng, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(whisper.Engine), nil
}

// CreateContext allocates a handle bundling the model source and an optional
// fixed language. Empty strings mean absent; modelPath takes precedence over
// modelName. Construction of the engine is deferred, so this always succeeds.
func (b *Bridge) CreateContext(modelPath, modelName, language string) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	h := b.next
	b.contexts[h] = &contextState{
		modelPath: modelPath,
		modelName: modelName,
		language:  language,
	}
	b.log.Debug().Int64("handle", int64(h)).Str("model_path", modelPath).
		Str("model_name", modelName).Str("language", language).
		Msg("bridge: context created")
	return h
}

// ReleaseContext invalidates the handle and frees the cached engine, if any.
// Calls issued on a released handle fail through the error-callback path.
func (b *Bridge) ReleaseContext(h Handle) {
	b.mu.Lock()
	state, ok := b.contexts[h]
	delete(b.contexts, h)
	b.mu.Unlock()
	if !ok {
		return
	}

	state.mu.Lock()
	eng := state.engine
	state.engine = nil
	state.mu.Unlock()
	if eng != nil {
		if err := eng.Close(); err != nil {
			b.log.Warn().Err(err).Int64("handle", int64(h)).Msg("bridge: engine close failed")
		}
	}
	b.log.Debug().Int64("handle", int64(h)).Msg("bridge: context released")
}

func (b *Bridge) lookup(h Handle) (*contextState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.contexts[h]
	return state, ok
}
