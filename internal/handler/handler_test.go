package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parley/parley-go/internal/crypto"
	"github.com/parley/parley-go/internal/model"
	"github.com/parley/parley-go/internal/service"
	"github.com/parley/parley-go/internal/session"
	"github.com/parley/parley-go/internal/wordlist"
)

func newTestRouter(t *testing.T, defaultWords int) http.Handler {
	t.Helper()

	gen := crypto.NewGenerator(wordlist.MustDefault(), crypto.SystemSource{})
	ph := NewPassphraseHandler(service.NewPassphraseService(gen, defaultWords, 64, nil))
	rh := NewRoomHandler(service.NewRoomService(nil), session.NewCookieStore("test-secret", false))

	r := chi.NewRouter()
	Routes(r, ph, rh)
	return r
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRandomWord(t *testing.T) {
	h := newTestRouter(t, 3)
	wl := wordlist.MustDefault()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "no parameter", query: "", want: 3},
		{name: "explicit", query: "?w=5", want: 5},
		{name: "one", query: "?w=1", want: 1},
		{name: "zero", query: "?w=0", want: 3},
		{name: "negative", query: "?w=-2", want: 3},
		{name: "non-numeric", query: "?w=many", want: 3},
		{name: "above cap", query: "?w=1000", want: 64},
		{name: "overflowing", query: "?w=99999999999999999999", want: 64},
		{name: "overflowing negative", query: "?w=-99999999999999999999", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/randomword"+tt.query, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp model.PassphraseResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

			words := strings.Split(resp.Wordlist, crypto.Separator)
			assert.Len(t, words, tt.want)
			for _, w := range words {
				assert.True(t, wl.Contains(w), "unknown word %q", w)
			}
		})
	}
}

func TestRandomWordNoContent(t *testing.T) {
	h := newTestRouter(t, 0)

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/randomword", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRoomEncode(t *testing.T) {
	h := newTestRouter(t, 3)

	tests := []struct {
		body string
		want string
	}{
		{body: `[false,false,false]`, want: ""},
		{body: `[true,false,false]`, want: "?chat"},
		{body: `[true,true,false]`, want: "?chat&audio"},
		{body: `[false,true,true]`, want: "?audio&video"},
		{body: `[true,true,true]`, want: "?chat&audio&video"},
		{body: `{"chat":true,"video":true}`, want: "?chat&video"},
		{body: ` {"audio":true} `, want: "?audio"},
		{body: "[true,false,true]\n", want: "?chat&video"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/room", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := do(t, h, req)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var resp model.RoomResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.want, resp.Query)
		})
	}
}

func TestRoomEncodeRejects(t *testing.T) {
	h := newTestRouter(t, 3)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "too short", body: `[true,false]`, wantErr: "feature selection must contain exactly 3 flags (chat, audio, video)"},
		{name: "too long", body: `[true,false,true,true]`, wantErr: "feature selection must contain exactly 3 flags (chat, audio, video)"},
		{name: "not booleans", body: `["chat","audio","video"]`, wantErr: "invalid request body"},
		{name: "unknown field", body: `{"screen":true}`, wantErr: "invalid request body"},
		{name: "scalar", body: `true`, wantErr: "invalid request body"},
		{name: "malformed", body: `[true,`, wantErr: "invalid request body"},
		{name: "null element", body: `[null,true,false]`, wantErr: "invalid request body"},
		{name: "null field", body: `{"chat":null}`, wantErr: "invalid request body"},
		{name: "null field beside valid one", body: `{"chat":null,"audio":true}`, wantErr: "invalid request body"},
		{name: "trailing garbage", body: `[true,false,false] garbage`, wantErr: "invalid request body"},
		{name: "second value", body: `[true,false,false] [true,true,true]`, wantErr: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/room", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantErr, resp["error"])
		})
	}
}

func TestRoomEncodeBodyTooLarge(t *testing.T) {
	h := newTestRouter(t, 3)

	body := "[" + strings.Repeat("true,", maxBodyBytes/5+1) + "true]"
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/room", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRoomRememberAndForget(t *testing.T) {
	h := newTestRouter(t, 3)

	// Nothing remembered yet.
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/room", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, httptest.NewRequest(http.MethodPost, "/api/room", strings.NewReader(`[false,true,true]`)))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, RoomFeaturesCookie, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/api/room", nil)
	req.AddCookie(cookies[0])
	rec = do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var pref model.RoomPreferenceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pref))
	assert.Equal(t, model.RoomPreferenceResponse{Audio: true, Video: true, Query: "?audio&video"}, pref)

	rec = do(t, h, httptest.NewRequest(http.MethodDelete, "/api/room", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestRoomRememberedTampered(t *testing.T) {
	h := newTestRouter(t, 3)

	req := httptest.NewRequest(http.MethodGet, "/api/room", nil)
	req.AddCookie(&http.Cookie{Name: RoomFeaturesCookie, Value: "?chat"})
	rec := do(t, h, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
