package translation

import (
	"context"
	"fmt"
	"strings"
)

// Provider builds translation sessions bound to a (source, target) language
// pair. Implementations decide where translation actually runs.
type Provider interface {
	NewSession(source, target string) Session
}

// Session is a prepared translation capability for one language pair.
// Prepare must succeed before Translate is called; a missing local language
// resource surfaces as an error matching ErrResourceMissing.
type Session interface {
	Prepare(ctx context.Context) error
	Translate(ctx context.Context, text string) (string, error)
}

// HTTPProvider serves sessions backed by a LibreTranslate-compatible
// endpoint, gated on a catalog of locally installed language resources when
// one is configured.
type HTTPProvider struct {
	Client  *Client
	Catalog *Catalog
}

func (p *HTTPProvider) NewSession(source, target string) Session {
	return &httpSession{
		provider: p,
		source:   strings.ToLower(strings.TrimSpace(source)),
		target:   strings.ToLower(strings.TrimSpace(target)),
	}
}

type httpSession struct {
	provider *HTTPProvider
	source   string
	target   string
	prepared bool
}

func (s *httpSession) Prepare(ctx context.Context) error {
	if s.source == "" || s.target == "" {
		return fmt.Errorf("translation: source and target languages are required")
	}
	if cat := s.provider.Catalog; cat != nil && !cat.Installed(s.source, s.target) {
		return fmt.Errorf("%w: %s-%s", ErrResourceMissing, s.source, s.target)
	}
	s.prepared = true
	return nil
}

func (s *httpSession) Translate(ctx context.Context, text string) (string, error) {
	if !s.prepared {
		if err := s.Prepare(ctx); err != nil {
			return "", err
		}
	}
	return s.provider.Client.Translate(ctx, text, s.source, s.target)
}
