package service

import (
	"github.com/parley/parley-go/internal/metrics"
	"github.com/parley/parley-go/internal/model"
	"github.com/parley/parley-go/internal/room"
)

// RoomService handles room feature query business logic.
type RoomService struct {
	metrics *metrics.Metrics
}

// NewRoomService creates a new RoomService.
func NewRoomService(m *metrics.Metrics) *RoomService {
	return &RoomService{metrics: m}
}

// Encode produces the feature query for sel.
func (s *RoomService) Encode(sel room.Selection) model.RoomResponse {
	names := room.FeatureNames()
	for i, on := range sel.Flags() {
		if on {
			s.metrics.ObserveFeature(names[i])
		}
	}
	return model.RoomResponse{Query: room.Encode(sel)}
}

// EncodeFlags produces the feature query for the positional (chat, audio,
// video) form. Any other length is rejected.
func (s *RoomService) EncodeFlags(flags []bool) (model.RoomResponse, error) {
	sel, err := room.FromFlags(flags)
	if err != nil {
		return model.RoomResponse{}, err
	}
	return s.Encode(sel), nil
}

// Remembered expands a previously encoded query back into a selection.
func (s *RoomService) Remembered(query string) (model.RoomPreferenceResponse, error) {
	sel, err := room.Decode(query)
	if err != nil {
		return model.RoomPreferenceResponse{}, err
	}
	return model.RoomPreferenceResponse{
		Chat:  sel.Chat,
		Audio: sel.Audio,
		Video: sel.Video,
		Query: room.Encode(sel),
	}, nil
}
