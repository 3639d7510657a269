package transport

import (
	"encoding/json"
	"net/http"

	"arenacore/core"
)

// handleAdminStatus exposes the core's arena-wide status over plain HTTP,
// supplemented from original_source/server/src/main.rs's POST "/admin/" and
// GET "/status/" routes (core::admin::AdminState, AdminRequest::RequestStatus)
// — an operator surface that answers for the whole arena rather than one
// connection, so it bypasses the per-connection websocket path entirely.
func (h *Handler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	token := r.Header.Get("X-Admin-Token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	resp, err := h.Engine.Ask(h.Core, core.AdminStatusRequest{Token: token}, askTimeout)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	reply, ok := resp.(core.AdminStatusReply)
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if reply.Err != nil {
		http.Error(w, reply.Err.Error(), http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reply)
}
