package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, analyses *Handler, adminAPIKey string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", analyses.Health)
	mux.HandleFunc("GET /api/v1/reits/{symbol}/analysis", analyses.GetAnalysis)
	mux.HandleFunc("GET /api/v1/reits/{symbol}/quality", analyses.GetQuality)
	mux.HandleFunc("GET /api/v1/reits/{symbol}/score", analyses.GetScore)

	exportHandler := http.HandlerFunc(analyses.TriggerExport)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/export", requireAuth(adminAPIKey, exportHandler))
	} else {
		mux.Handle("POST /api/v1/export", exportHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
