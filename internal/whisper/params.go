package whisper

// decodeParams is the subset of whisper.cpp context setters the fixed decode
// policy touches. Split out as an interface so policy application is
// verifiable without the native library.
type decodeParams interface {
	SetThreads(uint)
	SetLanguage(string) error
	SetSplitOnWord(bool)
	SetTokenTimestamps(bool)
	SetMaxSegmentLength(uint)
	SetMaxTokensPerSegment(uint)
	SetAudioCtx(uint)
	SetTemperature(float32)
	SetTemperatureFallback(float32)
}

// applyDecodePolicy configures a fresh context for one chunk: greedy
// deterministic decoding at the requested temperature with the fallback
// ladder disabled when no re-sampling attempts are allowed.
func applyDecodePolicy(p decodeParams, threads uint, opts DecodeOptions) {
	p.SetThreads(threads)
	lang := opts.Language
	if lang == "" {
		lang = "auto"
	}
	_ = p.SetLanguage(lang)
	p.SetSplitOnWord(false)
	p.SetTokenTimestamps(true)
	p.SetMaxSegmentLength(0)
	p.SetMaxTokensPerSegment(0)
	p.SetAudioCtx(0)
	p.SetTemperature(opts.Temperature)
	if opts.TemperatureFallbacks == 0 {
		// a zero increment turns off whisper.cpp's fallback ladder
		p.SetTemperatureFallback(0)
	}
}
