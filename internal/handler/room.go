package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/parley/parley-go/internal/model"
	"github.com/parley/parley-go/internal/room"
	"github.com/parley/parley-go/internal/service"
	"github.com/parley/parley-go/internal/session"
)

// RoomFeaturesCookie remembers the last encoded selection.
const RoomFeaturesCookie = "room_features"

var errNullFlag = errors.New("feature flag must be true or false, not null")

// flag is a JSON boolean that refuses null. encoding/json would otherwise
// leave a null element as false.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		return errNullFlag
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flag(v)
	return nil
}

func toBools(flags []flag) []bool {
	out := make([]bool, len(flags))
	for i, f := range flags {
		out[i] = bool(f)
	}
	return out
}

// selectionBody is the named form of a selection. Omitted fields are false.
type selectionBody struct {
	Chat  flag `json:"chat"`
	Audio flag `json:"audio"`
	Video flag `json:"video"`
}

// RoomHandler handles HTTP requests for room feature queries.
type RoomHandler struct {
	service *service.RoomService
	cookies *session.CookieStore
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(svc *service.RoomService, cookies *session.CookieStore) *RoomHandler {
	return &RoomHandler{service: svc, cookies: cookies}
}

// HandleEncode handles POST /api/room requests. The body is either the
// positional form [chat, audio, video] or {"chat":..,"audio":..,"video":..}.
func (h *RoomHandler) HandleEncode(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !decodeBody(w, r, &raw) {
		return
	}

	var resp model.RoomResponse
	switch body := bytes.TrimSpace(raw); {
	case len(body) > 0 && body[0] == '[':
		var flags []flag
		if err := json.Unmarshal(body, &flags); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
			return
		}
		var err error
		resp, err = h.service.EncodeFlags(toBools(flags))
		if err != nil {
			if errors.Is(err, room.ErrSelectionLength) {
				writeJSON(w, http.StatusBadRequest, errorResponse(room.ErrSelectionLength.Error()))
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
			return
		}
	case len(body) > 0 && body[0] == '{':
		var sel selectionBody
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sel); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
			return
		}
		resp = h.service.Encode(room.Selection{
			Chat:  bool(sel.Chat),
			Audio: bool(sel.Audio),
			Video: bool(sel.Video),
		})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	if err := h.cookies.Set(w, RoomFeaturesCookie, resp.Query); err != nil {
		slog.Warn("could not remember room features", "error", err)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRemembered handles GET /api/room requests.
func (h *RoomHandler) HandleRemembered(w http.ResponseWriter, r *http.Request) {
	query, ok := h.cookies.Get(r, RoomFeaturesCookie)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp, err := h.service.Remembered(query)
	if err != nil {
		slog.Warn("discarding unreadable room features cookie", "error", err)
		h.cookies.Remove(w, RoomFeaturesCookie)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleForget handles DELETE /api/room requests.
func (h *RoomHandler) HandleForget(w http.ResponseWriter, r *http.Request) {
	h.cookies.Remove(w, RoomFeaturesCookie)
	w.WriteHeader(http.StatusNoContent)
}
