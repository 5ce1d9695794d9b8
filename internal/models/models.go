package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL hosts the ggml conversions of the openai whisper models.
const DefaultBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Manager resolves named model variants ("base", "small.en", ...) to local
// ggml files, downloading them into Dir on first use.
type Manager struct {
	Dir     string
	BaseURL string
	Client  *http.Client
}

func NewManager(dir string) *Manager {
	return &Manager{
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Client:  http.DefaultClient,
	}
}

// Filename maps a variant name to its ggml file name.
func Filename(variant string) string {
	return fmt.Sprintf("ggml-%s.bin", variant)
}

// Ensure returns the local path for variant, downloading the model when it is
// not present yet. A partially written download never becomes visible: data
// lands in a temp file that is renamed only after a complete fetch.
func (m *Manager) Ensure(ctx context.Context, variant string) (string, error) {
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return "", fmt.Errorf("models: variant must not be empty")
	}
	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return "", fmt.Errorf("models: create dir: %w", err)
	}

	path := filepath.Join(m.Dir, Filename(variant))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(m.BaseURL, "/"), Filename(variant))
	log.Info().Str("variant", variant).Str("url", url).Msg("models: downloading")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("models: download %s: %w", variant, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("models: download %s: http %d", variant, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(m.Dir, Filename(variant)+".tmp-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("models: download %s: %w", variant, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	log.Info().Str("variant", variant).Str("path", path).Msg("models: ready")
	return path, nil
}
