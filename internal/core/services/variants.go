package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ewilliams-labs/soundify/internal/core/domain"
)

// Variant is one endpoint flavour of the recommendation adapter: it decides
// which query fields are required and how they are rendered into a prompt.
type Variant interface {
	Name() string
	Validate(q domain.RecommendationQuery) error
	Prompt(q domain.RecommendationQuery) string
}

// The three variants served by the API.
var (
	History  Variant = historyVariant{}
	Filtered Variant = filteredVariant{}
	Search   Variant = searchVariant{}
)

// Variants lists every variant in routing order.
func Variants() []Variant {
	return []Variant{History, Filtered, Search}
}

// VariantByName resolves a variant from its route name.
func VariantByName(name string) (Variant, error) {
	for _, v := range Variants() {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("unknown variant %q", name)
}

const itemSkeleton = `[
    {"track_name": "Song 1", "artist_name": "Artist 1", "genre": "Genre 1"},
    {"track_name": "Song 2", "artist_name": "Artist 2", "genre": "Genre 2"},
    ...
    {"track_name": "Song 20", "artist_name": "Artist 20", "genre": "Genre 20"}
]
`

func writeHistory(b *strings.Builder, history []domain.ListeningEntry) {
	for _, track := range history {
		fmt.Fprintf(b, "- %s by %s\n", track.TrackName, track.ArtistName)
	}
}

type historyVariant struct{}

func (historyVariant) Name() string { return "recommendations" }

func (historyVariant) Validate(q domain.RecommendationQuery) error { return q.HistoryErr() }

func (historyVariant) Prompt(q domain.RecommendationQuery) string {
	var b strings.Builder
	b.WriteString("You are a music recommendation expert. You specialize in creating personalized song suggestions based on a user's preferences, listening habits, and the context of the time of day. Here is some information about the user:\n\n")
	fmt.Fprintf(&b, "Time of day: %s\n", q.TimeOfDay)
	b.WriteString("Listening history:\n")
	writeHistory(&b, q.ListeningHistory)
	b.WriteString(`
Your task:
1. Suggest 20 songs similar to the user's listening history.
2. Recommendations should be JSON formatted with the following keys:
    - "track_name": Name of the track
    - "artist_name": Name of the artist
    - "genre": Genre of the song

Be creative, ensure that the suggestions are diverse and cater to the user's likely preferences based on the provided listening history. Here is the desired JSON output:
`)
	b.WriteString(itemSkeleton)
	return b.String()
}

type filteredVariant struct{}

func (filteredVariant) Name() string { return "filtered-recommendations" }

func (filteredVariant) Validate(q domain.RecommendationQuery) error { return q.HistoryErr() }

func (filteredVariant) Prompt(q domain.RecommendationQuery) string {
	var b strings.Builder
	b.WriteString("You are a music recommendation expert specializing in personalized suggestions. Your task is to curate a list of songs tailored to this user. Here is the information about the user:\n\n")
	fmt.Fprintf(&b, "Time of day: %s\n", q.TimeOfDay)
	if q.Genre != "" {
		fmt.Fprintf(&b, "Preferred genre: %s\n", q.Genre)
	}
	if q.Mood != "" {
		fmt.Fprintf(&b, "Current mood: %s\n", q.Mood)
	}
	b.WriteString("Listening history:\n")
	writeHistory(&b, q.ListeningHistory)
	b.WriteString(`
Your task:
1. Suggest 20 songs that align with the user's preferences, listening history, and the time of day.
2. If the user's genre and mood preferences are provided, tailor the recommendations accordingly.
3. Ensure the recommendations cover a diversity of songs while relating to the user's listening history.

Output format:
Return the recommendations in JSON format structured as follows:
`)
	b.WriteString(itemSkeleton)
	b.WriteString("\nGenerate recommendations creatively and ensure the response complies with the JSON format.\n\nRecommendations JSON:\n")
	return b.String()
}

// searchInput is validated before the search prompt is rendered.
type searchInput struct {
	Query string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type searchVariant struct{}

func (searchVariant) Name() string { return "search-recommendations" }

func (searchVariant) Validate(q domain.RecommendationQuery) error {
	if err := validate.Struct(searchInput{Query: q.Query}); err != nil {
		return domain.ErrNoQuery
	}
	return nil
}

func (searchVariant) Prompt(q domain.RecommendationQuery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a music recommendation expert specializing in search-based results. A user has provided the following query: '%s'.\n", q.Query)
	b.WriteString(`
Your task:
1. Understand the user's request and provide 20 relevant song recommendations.
2. Ensure recommendations align closely with the user's query (e.g., genre, mood, theme).
3. Be creative and diversify the recommendations as appropriate for the query.

Output format:
Return the recommendations as a JSON array structured with the following keys:
[
    {"track_name": "Song Title", "artist_name": "Artist Name", "genre": "Genre (optional)"},
    ...
    {"track_name": "Song Title 20", "artist_name": "Artist Name 20", "genre": "Genre (optional)"}
]

Ensure the JSON output is valid and strictly follows the specified structure.

Recommendations JSON:
`)
	return b.String()
}
