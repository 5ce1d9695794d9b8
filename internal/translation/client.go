package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a LibreTranslate-compatible endpoint. It is the network
// half of the HTTP provider; sessions wrap it with a prepared (source,
// target) pair.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, timeoutSec int) *Client {
	if timeoutSec <= 0 {
		timeoutSec = 8
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// Translate requests a single translation of text from source into target
// using the LibreTranslate payload (q, source, target, format).
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if c == nil || c.base == "" {
		return "", fmt.Errorf("translation: client not configured")
	}

	payload := map[string]any{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/translate", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("translation http %d for %s->%s", resp.StatusCode, source, target)
	}

	var lr struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", err
	}
	return strings.TrimSpace(lr.TranslatedText), nil
}
