package whisper

import "testing"

func tone(seconds float64, amplitude float32) []float32 {
	n := int(seconds * vadSampleRate)
	out := make([]float32, n)
	for i := range out {
		out[i] = amplitude
	}
	return out
}

func TestSplitOnSilenceShortClipIsOneChunk(t *testing.T) {
	samples := tone(5, 0.1)
	chunks := splitOnSilence(samples)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for short clip, got %d", len(chunks))
	}
	if chunks[0].offset != 0 || len(chunks[0].samples) != len(samples) {
		t.Fatalf("short clip chunk must cover the whole input")
	}
}

func TestSplitOnSilenceEmptyAndSilentInput(t *testing.T) {
	if got := splitOnSilence(nil); got != nil {
		t.Fatalf("expected no chunks for empty input, got %d", len(got))
	}
	if got := splitOnSilence(tone(3, 0)); got != nil {
		t.Fatalf("expected no chunks for silence, got %d", len(got))
	}
}

func TestSplitOnSilenceSplitsLongAudioAtGaps(t *testing.T) {
	var samples []float32
	samples = append(samples, tone(20, 0.1)...)
	samples = append(samples, tone(2, 0)...)
	samples = append(samples, tone(20, 0.1)...)

	chunks := splitOnSilence(samples)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks around the silence gap, got %d", len(chunks))
	}

	if chunks[0].offset != 0 {
		t.Fatalf("first chunk offset = %d, want 0", chunks[0].offset)
	}
	firstEnd := float64(len(chunks[0].samples)) / vadSampleRate
	if firstEnd < 19 || firstEnd > 21 {
		t.Fatalf("first chunk ends at %.2fs, want ~20s", firstEnd)
	}

	secondStart := chunks[1].startSeconds()
	if secondStart < 21 || secondStart > 23 {
		t.Fatalf("second chunk starts at %.2fs, want ~22s", secondStart)
	}
}

func TestSplitOnSilenceDropsShortTrailingFragment(t *testing.T) {
	var samples []float32
	samples = append(samples, tone(20, 0.1)...)
	samples = append(samples, tone(2, 0)...)
	samples = append(samples, tone(0.3, 0.1)...) // noise blip, under the 0.5s floor
	samples = append(samples, tone(10, 0)...)

	chunks := splitOnSilence(samples)
	if len(chunks) != 1 {
		t.Fatalf("expected the sub-minimum trailing fragment to be dropped, got %d chunks", len(chunks))
	}
	if chunks[0].offset != 0 {
		t.Fatalf("surviving chunk offset = %d, want 0", chunks[0].offset)
	}
}

func TestSplitOnSilenceCapsChunkLength(t *testing.T) {
	chunks := splitOnSilence(tone(35, 0.1))
	if len(chunks) != 2 {
		t.Fatalf("expected 35s of continuous voice to split at the 30s cap, got %d chunks", len(chunks))
	}
	if got := float64(len(chunks[0].samples)) / vadSampleRate; got > 30.01 {
		t.Fatalf("first chunk is %.2fs, cap is 30s", got)
	}
	if chunks[0].offset != 0 {
		t.Fatalf("first chunk offset = %d, want 0", chunks[0].offset)
	}
}
