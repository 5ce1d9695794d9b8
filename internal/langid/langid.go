package langid

import (
	"errors"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// ErrUndetermined is returned when no dominant language can be identified.
var ErrUndetermined = errors.New("langid: no dominant language detected")

// Detector identifies the dominant language of a text, returning a lowercase
// ISO 639-1 code.
type Detector interface {
	Detect(text string) (string, error)
}

type linguaDetector struct {
	det lingua.LanguageDetector
}

// NewDetector builds the default statistical detector. Construction is cheap;
// per-language models load lazily on first use.
func NewDetector() Detector {
	return &linguaDetector{
		det: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

func (d *linguaDetector) Detect(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrUndetermined
	}
	lang, ok := d.det.DetectLanguageOf(text)
	if !ok {
		return "", ErrUndetermined
	}
	return strings.ToLower(lang.IsoCode639_1().String()), nil
}
