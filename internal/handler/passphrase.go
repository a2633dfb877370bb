package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/parley/parley-go/internal/model"
	"github.com/parley/parley-go/internal/service"
)

// PassphraseHandler handles HTTP requests for passphrase generation.
type PassphraseHandler struct {
	service *service.PassphraseService
}

// NewPassphraseHandler creates a new PassphraseHandler.
func NewPassphraseHandler(svc *service.PassphraseService) *PassphraseHandler {
	return &PassphraseHandler{service: svc}
}

// HandleRandomWord handles GET /api/randomword[?w=n] requests. A missing or
// unparsable w falls back to the configured default; an overflowing one
// is clamped to the maximum.
func (h *PassphraseHandler) HandleRandomWord(w http.ResponseWriter, r *http.Request) {
	req := model.PassphraseRequest{Raw: r.URL.Query().Get("w")}
	if req.Raw != "" {
		n, err := strconv.Atoi(req.Raw)
		switch {
		case err == nil:
			req.Words = n
		case errors.Is(err, strconv.ErrRange):
			// Atoi saturates to the largest magnitude of the right sign,
			// so the service clamps or defaults it like any other count.
			req.Words = n
		default:
			slog.Debug("ignoring non-numeric word count", "w", req.Raw)
		}
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		if errors.Is(err, service.ErrNoPassphrase) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		slog.Error("passphrase generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
