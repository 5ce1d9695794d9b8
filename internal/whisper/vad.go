package whisper

// Voice-activity chunking: split long audio on sustained silence so each
// chunk decodes independently and segment timestamps stay anchored to the
// original clip. Energy-based, same heuristic family as silence diarizers.

const (
	vadSampleRate   = 16000
	vadWindow       = 480             // 30ms energy window
	vadMinSilence   = 8000            // 0.5s of silence ends a chunk
	vadMaxChunk     = 30 * 16000      // hard cap: 30s per chunk
	vadMinChunk     = vadSampleRate / 2 // drop fragments under 0.5s of speech
	vadEnergyThresh = 0.0005          // mean square threshold for "voice"
)

// chunk is a slice of the clip plus its offset in samples from clip start.
type chunk struct {
	offset  int
	samples []float32
}

// startSeconds returns the chunk's offset from clip start in seconds.
func (c chunk) startSeconds() float64 {
	return float64(c.offset) / float64(vadSampleRate)
}

func windowEnergy(w []float32) float64 {
	var sum float64
	for _, s := range w {
		sum += float64(s) * float64(s)
	}
	if len(w) == 0 {
		return 0
	}
	return sum / float64(len(w))
}

// splitOnSilence partitions samples into voice-activity chunks. Short clips
// come back as a single chunk; silence-only input yields no chunks. On long
// clips, voiced fragments shorter than vadMinChunk after a silence gap are
// treated as noise and dropped, so the chunks need not jointly cover the
// whole clip.
func splitOnSilence(samples []float32) []chunk {
	if len(samples) == 0 {
		return nil
	}
	if len(samples) <= vadMaxChunk {
		if isAllSilence(samples) {
			return nil
		}
		return []chunk{{offset: 0, samples: samples}}
	}

	var (
		chunks     []chunk
		chunkStart = -1
		silentRun  = 0
	)
	flush := func(end int) {
		if chunkStart < 0 {
			return
		}
		if end-chunkStart >= vadMinChunk {
			chunks = append(chunks, chunk{offset: chunkStart, samples: samples[chunkStart:end]})
		}
		chunkStart = -1
	}

	for pos := 0; pos < len(samples); pos += vadWindow {
		end := pos + vadWindow
		if end > len(samples) {
			end = len(samples)
		}
		voiced := windowEnergy(samples[pos:end]) >= vadEnergyThresh

		if voiced {
			if chunkStart < 0 {
				chunkStart = pos
			}
			silentRun = 0
		} else if chunkStart >= 0 {
			silentRun += end - pos
			if silentRun >= vadMinSilence {
				flush(end - silentRun)
				silentRun = 0
			}
		}

		if chunkStart >= 0 && end-chunkStart >= vadMaxChunk {
			flush(end)
			silentRun = 0
		}
	}
	flush(len(samples))
	return chunks
}

func isAllSilence(samples []float32) bool {
	for pos := 0; pos < len(samples); pos += vadWindow {
		end := pos + vadWindow
		if end > len(samples) {
			end = len(samples)
		}
		if windowEnergy(samples[pos:end]) >= vadEnergyThresh {
			return false
		}
	}
	return true
}
