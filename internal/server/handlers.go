package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Adda-Baaj/dummy-feeds/pkg/dummy"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type handlers struct {
	svc dummy.Services
	log *zap.Logger
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// posts always answers 200 with a JSON array; lookup failures yield [].
func (h *handlers) posts(w http.ResponseWriter, r *http.Request) {
	posts := h.svc.GetDummyPosts(r.Context(), r.URL.Query().Get("title"))
	h.respondJSON(w, http.StatusOK, posts)
}

// rate answers 200 with the record; lookup failures yield the zero record.
func (h *handlers) rate(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSpace(chi.URLParam(r, "base"))
	target := strings.TrimSpace(chi.URLParam(r, "target"))
	if base == "" || target == "" {
		http.Error(w, "base and target currency codes are required", http.StatusBadRequest)
		return
	}

	rate := h.svc.GetExchangeRate(r.Context(), strings.ToUpper(base)+"/"+strings.ToUpper(target))
	h.respondJSON(w, http.StatusOK, rate)
}

func (h *handlers) respondJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}
