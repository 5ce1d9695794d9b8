package whisper

// Segment is one decoded span of speech with timestamps in seconds.
type Segment struct {
	Text  string
	Start float64
	End   float64
}

// DecodeOptions configures one transcription pass. The zero value plus
// DefaultDecodeOptions reflects the fixed bridge policy: a single greedy
// deterministic pass with voice-activity chunking.
type DecodeOptions struct {
	// Language forces decoding in a specific language; empty means auto-detect.
	Language string
	// Workers bounds concurrent chunk decoding. 0 means one worker per chunk.
	Workers int
	// Temperature for sampling. The bridge always decodes at 0.0.
	Temperature float32
	// TemperatureFallbacks is the number of re-sampling attempts on low
	// confidence. The bridge never re-samples.
	TemperatureFallbacks int
	// SuppressTokens drops special/control tokens from segment text.
	SuppressTokens bool
	// SuppressBlank drops segments that are empty after trimming.
	SuppressBlank bool
}

// DefaultDecodeOptions returns the fixed decode policy used by the bridge.
func DefaultDecodeOptions(language string) DecodeOptions {
	return DecodeOptions{
		Language:             language,
		Workers:              0,
		Temperature:          0,
		TemperatureFallbacks: 0,
		SuppressTokens:       true,
		SuppressBlank:        true,
	}
}

// Engine is a small interface for whisper transcription.
// Implementations may be a no-op (stub) or backed by whisper.cpp (build tag: whisper_cpp).
type Engine interface {
	// Transcribe runs one full pass over the provided 16kHz mono PCM32F
	// samples and calls onSegment for each decoded segment in time order.
	// The callback should be fast and non-blocking to avoid stalling decoding.
	Transcribe(samples []float32, opts DecodeOptions, onSegment func(Segment)) error
	Close() error
}
