package summary

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tubebrief/internal/adapter/youtube"
	"tubebrief/internal/view"
)

type Handler struct {
	service *Service
	views   *view.Renderer
	timeout time.Duration
}

func NewHandler(service *Service, views *view.Renderer, timeout time.Duration) *Handler {
	return &Handler{service: service, views: views, timeout: timeout}
}

// Index renders the URL input form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, "", http.StatusOK)
}

// Create accepts the submitted form, runs the pipeline and renders the
// result view. Every failure maps to a single-line notice on the re-rendered
// form; the pipeline never runs past the first failing stage.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	url := r.PostFormValue("url")
	if url == "" {
		h.renderForm(w, "Please enter a YouTube URL", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.service.Summarize(ctx, url)
	if err != nil {
		h.renderPipelineError(w, r, url, err)
		return
	}

	summaryHTML, err := view.MarkdownToHTML(result.Markdown)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to convert summary markdown", "error", err)
		h.renderForm(w, "Something went wrong rendering the summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.RenderResult(w, view.ResultData{
		SummaryHTML:  summaryHTML,
		ThumbnailURL: result.ThumbnailURL,
		URL:          result.URL,
	}); err != nil {
		slog.ErrorContext(r.Context(), "failed to render result view", "error", err)
	}
}

// List returns the recent summary history as JSON.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.History(r.Context(), 20)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list summaries", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Internal Server Error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": summaries}); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func (h *Handler) renderPipelineError(w http.ResponseWriter, r *http.Request, url string, err error) {
	switch {
	case errors.Is(err, youtube.ErrNoVideoID):
		h.renderForm(w, "Invalid YouTube URL", http.StatusUnprocessableEntity)
	case errors.Is(err, youtube.ErrNoCaptions):
		h.renderForm(w, "This video has no transcript available", http.StatusUnprocessableEntity)
	case errors.Is(err, youtube.ErrVideoUnavailable):
		h.renderForm(w, "This video is unavailable", http.StatusUnprocessableEntity)
	default:
		slog.ErrorContext(r.Context(), "summarization failed", "error", err, "url", url)
		h.renderForm(w, "Could not summarize this video, please try again", http.StatusBadGateway)
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, notice string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.views.RenderForm(w, view.FormData{Notice: notice}); err != nil {
		slog.Error("failed to render form view", "error", err)
	}
}
