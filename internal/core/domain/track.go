package domain

// ListeningEntry is one track from the user's listening history.
type ListeningEntry struct {
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
}

// RecommendationItem is a single suggested track as returned by the model.
type RecommendationItem struct {
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	Genre      string `json:"genre,omitempty"`
}
