package model

// RoomResponse represents an encoded room feature query.
type RoomResponse struct {
	Query string `json:"query"`
}

// RoomPreferenceResponse represents the feature selection remembered for a client.
type RoomPreferenceResponse struct {
	Chat  bool   `json:"chat"`
	Audio bool   `json:"audio"`
	Video bool   `json:"video"`
	Query string `json:"query"`
}
