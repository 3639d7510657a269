package transport

import (
	"net/http"
	"runtime/debug"

	"golang.org/x/net/websocket"
)

// NewMux builds the HTTP surface: a health check at "/" and "/healthz",
// the WebSocket upgrade at "/subscribe" (same three endpoints and paths as
// the teacher's main.go wiring), and "/admin/status", the operator status
// surface supplemented from original_source/server/src/main.rs's "/admin/"
// and "/status/" routes.
func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleHealthCheck)
	mux.HandleFunc("/healthz", handleHealthCheck)
	mux.Handle("/subscribe", websocket.Handler(h.Handle))
	mux.HandleFunc("/admin/status", h.handleAdminStatus)
	return mux
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			debug.PrintStack()
		}
	}()
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
