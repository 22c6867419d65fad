package study

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hagwonhq/hagwon/internal/platform/httpx"
)

// DeviceHeader carries the device identity that scopes the store.
const DeviceHeader = "X-Device-ID"

// Handler exposes bookmark and progress endpoints.
type Handler struct {
	logger *slog.Logger
	store  *Store
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, store *Store) *Handler {
	return &Handler{logger: logger, store: store}
}

// MountRoutes registers study routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/bookmarks", h.listBookmarks)
	r.Put("/bookmarks/{courseID}", h.addBookmark)
	r.Delete("/bookmarks/{courseID}", h.removeBookmark)
	r.Get("/progress", h.progressSnapshot)
	r.Get("/progress/{courseID}", h.getProgress)
	r.Put("/progress/{courseID}", h.setProgress)
}

func device(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(DeviceHeader)
	if id == "" {
		httpx.Problem(w, http.StatusBadRequest, "Missing Device", DeviceHeader+" header is required")
		return "", false
	}
	return id, true
}

func (h *Handler) listBookmarks(w http.ResponseWriter, r *http.Request) {
	dev, ok := device(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"bookmarks": h.store.Bookmarks(r.Context(), dev)})
}

func (h *Handler) addBookmark(w http.ResponseWriter, r *http.Request) {
	dev, ok := device(w, r)
	if !ok {
		return
	}
	h.store.AddBookmark(r.Context(), dev, chi.URLParam(r, "courseID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeBookmark(w http.ResponseWriter, r *http.Request) {
	dev, ok := device(w, r)
	if !ok {
		return
	}
	h.store.RemoveBookmark(r.Context(), dev, chi.URLParam(r, "courseID"))
	w.WriteHeader(http.StatusNoContent)
}

type progressRequest struct {
	Percent float64 `json:"percent"`
}

func (h *Handler) setProgress(w http.ResponseWriter, r *http.Request) {
	dev, ok := device(w, r)
	if !ok {
		return
	}
	var req progressRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	h.store.SetProgress(r.Context(), dev, chi.URLParam(r, "courseID"), req.Percent)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"course_id": chi.URLParam(r, "courseID"),
		"percent":   h.store.Progress(r.Context(), dev, chi.URLParam(r, "courseID")),
	})
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	dev, ok := device(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"course_id": chi.URLParam(r, "courseID"),
		"percent":   h.store.Progress(r.Context(), dev, chi.URLParam(r, "courseID")),
	})
}

func (h *Handler) progressSnapshot(w http.ResponseWriter, r *http.Request) {
	dev, ok := device(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"progress": h.store.ProgressSnapshot(r.Context(), dev)})
}
