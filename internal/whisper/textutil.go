package whisper

import "strings"

// stripControlTokens removes whisper control markers that leak into segment
// text, e.g. "[_BEG_]", "[_TT_150]" and "<|endoftext|>" style tokens.
func stripControlTokens(text string) string {
	if !strings.ContainsAny(text, "[<") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], "[_") {
			if end := strings.IndexByte(text[i:], ']'); end >= 0 {
				i += end + 1
				continue
			}
		}
		if strings.HasPrefix(text[i:], "<|") {
			if end := strings.Index(text[i:], "|>"); end >= 0 {
				i += end + 2
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}
