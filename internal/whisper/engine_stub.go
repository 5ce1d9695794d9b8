//go:build !whisper_cpp

package whisper

import "errors"

// Default stub (no cgo) so the project builds without the whisper_cpp tag.
// It fails loudly instead of pretending to transcribe; callers that need a
// working engine must build with -tags whisper_cpp.
type stubEngine struct{}

func NewEngine(modelPath string) (Engine, error) { return &stubEngine{}, nil }

func (e *stubEngine) Close() error { return nil }

func (e *stubEngine) Transcribe(samples []float32, opts DecodeOptions, onSegment func(Segment)) error {
	return errors.New("whisper: built without whisper_cpp; native engine unavailable")
}
