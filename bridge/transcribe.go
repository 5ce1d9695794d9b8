package bridge

import (
	"fmt"

	"github.com/obiente/translate/speechbridge/internal/whisper"
)

// Transcribe schedules transcription of the audio file and returns
// immediately. Segments stream through onResult in non-decreasing time
// order, interleaved with advisory progress, then exactly one terminal call
// follows: (nil, nil, 0, 0) on success, (nil, message, 0, 0) on failure.
//
// Audio-load failures, engine-construction failures and decode failures are
// indistinguishable to the caller: all collapse into the terminal error text.
func (b *Bridge) Transcribe(h Handle, audioPath string, onResult SegmentCallback, onProgress ProgressCallback, token any) {
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("transcribe: panic: %v", r)
				b.log.Error().Int64("handle", int64(h)).Str("audio", audioPath).
					Msgf("bridge: transcription unit panicked: %v", r)
			}
			if err != nil {
				msg := err.Error()
				onResult(nil, &msg, 0, 0, token)
				return
			}
			onResult(nil, nil, 0, 0, token)
		}()
		err = b.runTranscribe(h, audioPath, onResult, onProgress, token)
	}()
}

func (b *Bridge) runTranscribe(h Handle, audioPath string, onResult SegmentCallback, onProgress ProgressCallback, token any) error {
	state, ok := b.lookup(h)
	if !ok {
		return fmt.Errorf("invalid or released context handle %d", h)
	}

	eng, err := state.resolveEngine(b.engines)
	if err != nil {
		return err
	}

	clip, err := b.audio(audioPath)
	if err != nil {
		return err
	}
	duration := clip.Duration()

	b.log.Debug().Int64("handle", int64(h)).Str("audio", audioPath).
		Float64("duration", duration).Msg("bridge: transcription started")

	opts := whisper.DefaultDecodeOptions(state.language)
	return eng.Transcribe(clip.Samples, opts, func(seg whisper.Segment) {
		text := seg.Text
		onResult(&text, nil, seg.Start, seg.End, token)
		if onProgress != nil && duration > 0 {
			onProgress(100*seg.End/duration, token)
		}
	})
}
