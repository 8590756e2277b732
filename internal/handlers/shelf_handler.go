package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/koios/moonlight-shelf/internal/applist"
	"github.com/koios/moonlight-shelf/internal/deeplink"
	"github.com/koios/moonlight-shelf/internal/shelf"
	"github.com/koios/moonlight-shelf/pkg/models"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// ShelfHandler handles HTTP requests for the top shelf
type ShelfHandler struct {
	provider *shelf.Provider
	logger   *zap.Logger
	timeout  time.Duration
}

// NewShelfHandler creates a new shelf handler. A load that takes longer than
// timeout is abandoned with 504.
func NewShelfHandler(provider *shelf.Provider, timeout time.Duration, logger *zap.Logger) *ShelfHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ShelfHandler{
		provider: provider,
		logger:   logger,
		timeout:  timeout,
	}
}

// RegisterRoutes registers the shelf routes
func (h *ShelfHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/shelf", h.handleShelf)
	mux.HandleFunc("/apps", h.handleApps)
	mux.HandleFunc("/link", h.handleLink)
}

// handleHealth handles GET /health - returns service health status
func (h *ShelfHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "moonlight-shelf",
		"version": Version,
	})
}

// handleShelf handles GET /shelf - builds the top shelf content. A malformed
// app list answers with a JSON null, matching the nil completion.
func (h *ShelfHandler) handleShelf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	select {
	case res := <-h.provider.LoadAsync(ctx):
		if res.Err != nil {
			h.logger.Error("appList deserialization failed", zap.Error(res.Err))
			h.writeJSON(w, http.StatusOK, nil)
			return
		}
		h.writeJSON(w, http.StatusOK, res.Content)
		h.logger.Debug("Served shelf",
			zap.Int("sections", len(res.Content.Sections)),
			zap.Int("items", res.Content.ItemCount()))
	case <-ctx.Done():
		h.logger.Warn("Shelf load abandoned", zap.Error(ctx.Err()))
		http.Error(w, "Shelf load timed out", http.StatusGatewayTimeout)
	}
}

// handleApps handles GET /apps - returns the decoded app list with the
// entries that were skipped
func (h *ShelfHandler) handleApps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.provider.DecodeAppList(ctx)
	if err != nil {
		if errors.Is(err, applist.ErrMalformed) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("Failed to decode app list", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if res == nil {
		res = &applist.Result{Entries: []models.AppListEntry{}, Rejections: []applist.Rejection{}}
	}

	h.writeJSON(w, http.StatusOK, res)
	h.logger.Debug("Served app list",
		zap.Int("entries", len(res.Entries)),
		zap.Int("rejections", len(res.Rejections)))
}

// handleLink handles GET /link?app={id}&uuid={hostUUID} - returns the deep link
func (h *ShelfHandler) handleLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	appID := r.URL.Query().Get("app")
	hostUUID := r.URL.Query().Get("uuid")
	if appID == "" || hostUUID == "" {
		http.Error(w, "app and uuid are required", http.StatusBadRequest)
		return
	}

	link, err := deeplink.Build(appID, hostUUID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

func (h *ShelfHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
