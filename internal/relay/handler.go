package relay

import (
	"encoding/json"
	"fmt"
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/errors"
	"log/slog"
	"net/http"
)

// Handler answers a player's question to a suspect.
//
// Every response carries permissive CORS headers, and every response body except the pre-flight one is JSON with a
// reply string so that the game never has to render a backend error.
type Handler struct {
	service      *dialogue.Service
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewHandler creates a Handler. Request bodies larger than maxBodyBytes are rejected.
func NewHandler(service *dialogue.Service, logger *slog.Logger, maxBodyBytes int64) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

type errorResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

// SetCORSHeaders allows any origin to call the relay.
func SetCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
}

// WriteError writes a JSON error response carrying the filler reply.
func WriteError(w http.ResponseWriter, status int, reason string) {
	body, _ := json.Marshal(errorResponse{Reply: dialogue.FillerReply, Error: reason}) //nolint:errchkjson // plain strings
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// CompleterConfigured reports whether the relay started with a completion service credential.
func (h *Handler) CompleterConfigured() bool {
	return h.service.CompleterConfigured()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	SetCORSHeaders(w.Header())
	defer func() {
		if rec := recover(); rec != nil {
			h.unexpectedError(w, r, errors.New("recovered panic", slog.String("panic", fmt.Sprint(rec))))
		}
	}()

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		h.clientError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var question dialogue.Question
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.clientError(w, r, http.StatusRequestEntityTooLarge, "request body too large", err)
			return
		}
		h.clientError(w, r, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	answer, err := h.service.Reply(r.Context(), question)
	switch {
	case err == nil:
		h.writeJSON(w, r, http.StatusOK, answer)
	case errors.Is(err, dialogue.ErrMissingField):
		h.clientError(w, r, http.StatusBadRequest, "missing suspectName or playerQuestion", err)
	case errors.Is(err, dialogue.ErrMissingCredential):
		h.serverError(w, r, http.StatusInternalServerError, "server misconfigured", dialogue.FillerReply, err)
	case errors.Is(err, dialogue.ErrUpstream):
		h.serverError(w, r, http.StatusBadGateway, "upstream failure", dialogue.DeflectionReply, err)
	default:
		h.unexpectedError(w, r, err)
	}
}

func (h *Handler) unexpectedError(w http.ResponseWriter, r *http.Request, err error) {
	h.serverError(w, r, http.StatusInternalServerError, "internal server error", dialogue.FillerReply, err)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, status int, reason, reply string, err error) {
	h.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", r.Method), slog.String("uri", r.URL.RequestURI()), slog.Int("status", status),
		errors.SlogError(err))
	h.writeJSON(w, r, status, errorResponse{Reply: reply, Error: reason})
}

func (h *Handler) clientError(w http.ResponseWriter, r *http.Request, status int, reason string, err error) {
	attrs := []slog.Attr{
		slog.String("method", r.Method), slog.String("uri", r.URL.RequestURI()), slog.Int("status", status),
	}
	if err != nil {
		attrs = append(attrs, errors.SlogError(err))
	}
	h.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status), attrs...)
	h.writeJSON(w, r, status, errorResponse{Reply: dialogue.FillerReply, Error: reason})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelError, "marshal response", errors.SlogError(err))
		body = []byte(fmt.Sprintf(`{"reply":%q,"error":"internal server error"}`, dialogue.FillerReply))
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
