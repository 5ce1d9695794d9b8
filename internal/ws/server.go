package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/obiente/translate/speechbridge/bridge"
	"github.com/obiente/translate/speechbridge/internal/config"
	"github.com/obiente/translate/speechbridge/internal/translation"
)

// Server exposes the bridge over WebSocket, one request per connection.
// Bridge callbacks arrive on worker goroutines and are serialized onto the
// socket as JSON event frames, terminal event last.
type Server struct {
	cfg      config.Config
	upgrader websocket.Upgrader
	bridge   *bridge.Bridge
	handle   bridge.Handle
}

// event is one frame sent to the client.
type event struct {
	Type    string  `json:"type"` // segment | progress | translation | done | error
	Text    string  `json:"text,omitempty"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Percent float64 `json:"percent"`
	Error   string  `json:"error,omitempty"`
}

type transcribeRequest struct {
	AudioPath string `json:"audio_path"`
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

func NewServer(cfg config.Config) *Server {
	catalog, err := translation.LoadCatalog(cfg.ResourceDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.ResourceDir).Msg("ws: resource catalog unavailable")
		catalog = nil
	}
	br := bridge.New(bridge.Options{
		ModelsDir: cfg.ModelsDir,
		Translator: &translation.HTTPProvider{
			Client:  translation.NewClient(cfg.TranslationBaseURL, cfg.TranslationTimeoutSec),
			Catalog: catalog,
		},
	})
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024 * 16,
			WriteBufferSize: 1024 * 16,
		},
		bridge: br,
		handle: br.CreateContext(cfg.ModelPath, cfg.ModelName, cfg.Language),
	}
}

// writer serializes concurrent callback writes onto one connection.
type writer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *writer) send(ev event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
	if err := w.conn.WriteJSON(ev); err != nil {
		log.Debug().Err(err).Msg("ws: write failed")
	}
}

// HandleTranscribe streams segment and progress events for one audio file,
// ending with a done or error frame.
func (s *Server) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}
	defer conn.Close()

	var req transcribeRequest
	if err := readRequest(conn, &req); err != nil || req.AudioPath == "" {
		_ = conn.WriteJSON(event{Type: "error", Error: "expected {\"audio_path\": ...}"})
		return
	}

	out := &writer{conn: conn}
	done := make(chan struct{})

	onResult := func(text, errText *string, start, end float64, _ any) {
		switch {
		case text != nil:
			out.send(event{Type: "segment", Text: *text, Start: start, End: end})
		case errText != nil:
			out.send(event{Type: "error", Error: *errText})
			close(done)
		default:
			out.send(event{Type: "done"})
			close(done)
		}
	}
	onProgress := func(percent float64, _ any) {
		// overshoot past 100 is allowed by the bridge; clamp for display
		if percent > 100 {
			percent = 100
		}
		out.send(event{Type: "progress", Percent: percent})
	}

	s.bridge.Transcribe(s.handle, req.AudioPath, onResult, onProgress, nil)
	<-done
}

// HandleTranslate delivers exactly one translation or error frame.
func (s *Server) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}
	defer conn.Close()

	var req translateRequest
	if err := readRequest(conn, &req); err != nil || req.TargetLang == "" {
		_ = conn.WriteJSON(event{Type: "error", Error: "expected {\"text\": ..., \"target_lang\": ...}"})
		return
	}

	out := &writer{conn: conn}
	done := make(chan struct{})

	s.bridge.Translate(req.Text, req.SourceLang, req.TargetLang, nil,
		func(_ any, translated, errText *string) {
			if errText != nil {
				out.send(event{Type: "error", Error: *errText})
			} else {
				out.send(event{Type: "translation", Text: *translated})
			}
			close(done)
		})
	<-done
}

func readRequest(conn *websocket.Conn, v any) error {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
