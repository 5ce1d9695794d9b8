package langid

import (
	"errors"
	"testing"
)

func TestDetectEmptyTextIsUndetermined(t *testing.T) {
	d := NewDetector()
	if _, err := d.Detect(""); !errors.Is(err, ErrUndetermined) {
		t.Fatalf("expected ErrUndetermined for empty text, got %v", err)
	}
	if _, err := d.Detect("   \n\t "); !errors.Is(err, ErrUndetermined) {
		t.Fatalf("expected ErrUndetermined for whitespace, got %v", err)
	}
}

func TestDetectReturnsLowercaseISO639(t *testing.T) {
	d := NewDetector()
	lang, err := d.Detect("Bonjour tout le monde, comment allez-vous aujourd'hui ?")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if lang != "fr" {
		t.Fatalf("Detect = %q, want fr", lang)
	}
}
