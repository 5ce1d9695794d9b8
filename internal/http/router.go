package http

import (
	"encoding/json"
	"net/http"

	"github.com/obiente/translate/speechbridge/internal/config"
	"github.com/obiente/translate/speechbridge/internal/ws"
)

func NewRouter(cfg config.Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})
	wss := ws.NewServer(cfg)
	mux.HandleFunc("/ws/transcribe", wss.HandleTranscribe)
	mux.HandleFunc("/ws/translate", wss.HandleTranslate)
	return mux
}
