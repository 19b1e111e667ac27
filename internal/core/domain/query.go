package domain

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var (
	// ErrNotObject rejects request bodies that are valid JSON but not an object.
	ErrNotObject = errors.New("request body must be a JSON object")
	// ErrInvalidHistory is reported when listening_history is not a list of
	// objects carrying both track_name and artist_name.
	ErrInvalidHistory = errors.New("listening_history entries must have track_name and artist_name")
)

// RecommendationQuery is the inbound request payload. Each endpoint variant
// reads only the fields it understands; missing fields keep their zero value.
//
// Keys are matched exactly. A malformed listening_history does not fail
// decoding: it is kept on the query and reported by HistoryErr, so variants
// that never read the history are unaffected.
type RecommendationQuery struct {
	TimeOfDay        string           `json:"time_of_day"`
	ListeningHistory []ListeningEntry `json:"listening_history"`
	Genre            string           `json:"genre"`
	Mood             string           `json:"mood"`
	Query            string           `json:"query"`

	historyErr error
}

// HistoryErr reports why the listening history could not be used, or nil.
func (q RecommendationQuery) HistoryErr() error {
	return q.historyErr
}

func (q *RecommendationQuery) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return ErrNotObject
	}

	var out RecommendationQuery
	for key, dst := range map[string]*string{
		"time_of_day": &out.TimeOfDay,
		"genre":       &out.Genre,
		"mood":        &out.Mood,
		"query":       &out.Query,
	} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if raw, ok := fields["listening_history"]; ok {
		out.ListeningHistory, out.historyErr = decodeHistory(raw)
	}

	*q = out
	return nil
}

func decodeHistory(raw json.RawMessage) ([]ListeningEntry, error) {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return nil, ErrInvalidHistory
	}

	history := make([]ListeningEntry, 0, len(entries))
	for i, fields := range entries {
		var entry ListeningEntry
		track, hasTrack := fields["track_name"]
		artist, hasArtist := fields["artist_name"]
		if !hasTrack || !hasArtist {
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidHistory)
		}
		if json.Unmarshal(track, &entry.TrackName) != nil || json.Unmarshal(artist, &entry.ArtistName) != nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidHistory)
		}
		history = append(history, entry)
	}
	return history, nil
}
