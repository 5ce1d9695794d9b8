package bridge_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/obiente/translate/speechbridge/bridge"
	"github.com/obiente/translate/speechbridge/internal/langid"
	"github.com/obiente/translate/speechbridge/internal/translation"
)

// staticDetector returns a fixed language, or ErrUndetermined for empty text.
type staticDetector struct {
	lang string
}

func (d staticDetector) Detect(text string) (string, error) {
	if text == "" || d.lang == "" {
		return "", langid.ErrUndetermined
	}
	return d.lang, nil
}

type fakeSession struct {
	prepareErr   error
	translateErr error
	result       string
}

func (s *fakeSession) Prepare(ctx context.Context) error { return s.prepareErr }

func (s *fakeSession) Translate(ctx context.Context, text string) (string, error) {
	if s.translateErr != nil {
		return "", s.translateErr
	}
	return s.result, nil
}

type fakeProvider struct {
	mu       sync.Mutex
	session  *fakeSession
	sessions int32
	source   string
	target   string
}

func (p *fakeProvider) NewSession(source, target string) translation.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions++
	p.source, p.target = source, target
	return p.session
}

type translateResult struct {
	text    string
	hasText bool
	errText string
	hasErr  bool
}

type translateRecorder struct {
	mu      sync.Mutex
	results []translateResult
	done    chan struct{}
	fired   atomic.Bool
}

func newTranslateRecorder() *translateRecorder {
	return &translateRecorder{done: make(chan struct{})}
}

func (r *translateRecorder) onResult(token any, translated, errText *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := translateResult{}
	if translated != nil {
		res.text, res.hasText = *translated, true
	}
	if errText != nil {
		res.errText, res.hasErr = *errText, true
	}
	r.results = append(r.results, res)
	if r.fired.CompareAndSwap(false, true) {
		close(r.done)
	}
}

func (r *translateRecorder) wait(t *testing.T) translateResult {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("no terminal callback within 5s")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.results) != 1 {
		t.Fatalf("expected exactly one terminal callback, got %d", len(r.results))
	}
	return r.results[0]
}

func TestTranslateSuccessWithExplicitSource(t *testing.T) {
	provider := &fakeProvider{session: &fakeSession{result: "Hello world"}}
	b := bridge.New(bridge.Options{Translator: provider, Detector: staticDetector{}})
	rec := newTranslateRecorder()
	b.Translate("Bonjour le monde", "fr", "en", "tok", rec.onResult)

	res := rec.wait(t)
	if !res.hasText || res.text == "" {
		t.Fatalf("expected non-empty translation, got %+v", res)
	}
	if res.hasErr {
		t.Fatalf("unexpected error %q", res.errText)
	}
	if provider.source != "fr" || provider.target != "en" {
		t.Fatalf("session bound to (%s,%s), want (fr,en)", provider.source, provider.target)
	}
}

func TestTranslateUndetectableSourceFailsSynchronously(t *testing.T) {
	provider := &fakeProvider{session: &fakeSession{result: "never"}}
	b := bridge.New(bridge.Options{Translator: provider, Detector: staticDetector{}})

	rec := newTranslateRecorder()
	b.Translate("", "", "en", nil, rec.onResult)

	// the terminal callback must already have fired on this goroutine,
	// before any asynchronous work could be scheduled
	if !rec.fired.Load() {
		t.Fatal("detection failure must invoke the terminal callback synchronously")
	}
	res := rec.wait(t)
	if !res.hasErr || res.errText != bridge.MsgLanguageUndetermined {
		t.Fatalf("expected fixed detection-failure message, got %+v", res)
	}
	if provider.sessions != 0 {
		t.Fatalf("no session must be constructed after detection failure, got %d", provider.sessions)
	}
}

func TestTranslateDetectedSourceIsUsed(t *testing.T) {
	provider := &fakeProvider{session: &fakeSession{result: "Hello"}}
	b := bridge.New(bridge.Options{Translator: provider, Detector: staticDetector{lang: "fr"}})

	rec := newTranslateRecorder()
	b.Translate("Bonjour", "", "en", nil, rec.onResult)
	rec.wait(t)

	if provider.source != "fr" {
		t.Fatalf("detected source %q not bound into session, got %q", "fr", provider.source)
	}
}

func TestTranslateMissingResourceGetsFixedMessage(t *testing.T) {
	provider := &fakeProvider{session: &fakeSession{
		prepareErr: fmt.Errorf("%w: fr-en", translation.ErrResourceMissing),
	}}
	b := bridge.New(bridge.Options{Translator: provider, Detector: staticDetector{}})

	rec := newTranslateRecorder()
	b.Translate("Bonjour", "fr", "en", nil, rec.onResult)

	res := rec.wait(t)
	if !res.hasErr {
		t.Fatalf("expected error terminal, got %+v", res)
	}
	if res.errText != bridge.MsgResourceMissing {
		t.Fatalf("raw native description leaked through: %q", res.errText)
	}
}

func TestTranslateOtherFailuresPassThroughVerbatim(t *testing.T) {
	provider := &fakeProvider{session: &fakeSession{
		translateErr: errors.New("translation http 503 for fr->en"),
	}}
	b := bridge.New(bridge.Options{Translator: provider, Detector: staticDetector{}})

	rec := newTranslateRecorder()
	b.Translate("Bonjour", "fr", "en", nil, rec.onResult)

	res := rec.wait(t)
	if !res.hasErr || res.errText != "translation http 503 for fr->en" {
		t.Fatalf("expected verbatim native error, got %+v", res)
	}
}

func TestTranslateProviderPanicBecomesErrorCallback(t *testing.T) {
	b := bridge.New(bridge.Options{Translator: panicProvider{}, Detector: staticDetector{}})

	rec := newTranslateRecorder()
	b.Translate("Bonjour", "fr", "en", nil, rec.onResult)

	res := rec.wait(t)
	if !res.hasErr {
		t.Fatalf("expected error terminal, got %+v", res)
	}
}

type panicProvider struct{}

func (panicProvider) NewSession(source, target string) translation.Session {
	panic("session backend unavailable")
}
