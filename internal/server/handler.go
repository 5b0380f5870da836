package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gvexport/pkg/buildinfo"
	"github.com/matzehuels/gvexport/pkg/errors"
	"github.com/matzehuels/gvexport/pkg/format"
	"github.com/matzehuels/gvexport/pkg/render"
)

type handler struct {
	renderer      *render.Renderer
	defaultFormat format.Format
	logger        *log.Logger
}

// FormatInfo describes one catalog entry.
type FormatInfo struct {
	Name        string `json:"name"`
	Token       string `json:"token"`
	Description string `json:"description"`
	InProcess   bool   `json:"in_process"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func newFormatInfo(f format.Format) FormatInfo {
	token := f.Token()
	return FormatInfo{
		Name:        f.String(),
		Token:       token,
		Description: f.Description(),
		InProcess:   render.InProcess(token),
	}
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Build: buildinfo.Get()})
}

// listFormats handles GET /formats.
func (h *handler) listFormats(w http.ResponseWriter, r *http.Request) {
	all := format.All()
	out := make([]FormatInfo, len(all))
	for i, f := range all {
		out[i] = newFormatInfo(f)
	}
	respondJSON(w, http.StatusOK, out)
}

// getFormat handles GET /formats/{name}.
func (h *handler) getFormat(w http.ResponseWriter, r *http.Request) {
	f, err := format.Parse(chi.URLParam(r, "name"))
	if err != nil {
		h.respondError(w, r, http.StatusNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, newFormatInfo(f))
}

// render handles POST /render.
func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	f := h.defaultFormat
	if name := r.URL.Query().Get("format"); name != "" {
		parsed, err := format.Parse(name)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, err)
			return
		}
		f = parsed
	}

	renderer := h.renderer
	if layout := r.URL.Query().Get("layout"); layout != "" {
		if err := errors.ValidateLayoutName(layout); err != nil {
			h.respondError(w, r, http.StatusBadRequest, err)
			return
		}
		scoped := *h.renderer
		scoped.Options.Layout = layout
		renderer = &scoped
	}

	dot, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		if tooLarge := new(http.MaxBytesError); stderrors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.respondError(w, r, status, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if len(dot) == 0 {
		h.respondError(w, r, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "request body must contain DOT source"))
		return
	}

	res, err := renderer.Render(r.Context(), dot, f)
	if err != nil {
		h.respondError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", render.ContentType(res.Token))
	w.Header().Set("X-Graphviz-Token", res.Token)
	w.Header().Set("X-Render-Backend", string(res.Backend))
	if res.Cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidVariant, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidEngine:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeEngineNotFound:
		return http.StatusNotImplemented
	case errors.ErrCodeEngineFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "status", status, "err", err)
	} else {
		h.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	respondJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}
