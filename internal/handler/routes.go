package handler

import "github.com/go-chi/chi/v5"

// Routes registers the /api endpoints on r.
func Routes(r chi.Router, passphrases *PassphraseHandler, rooms *RoomHandler) {
	r.Get("/api/randomword", passphrases.HandleRandomWord)

	r.Post("/api/room", rooms.HandleEncode)
	r.Get("/api/room", rooms.HandleRemembered)
	r.Delete("/api/room", rooms.HandleForget)
}
