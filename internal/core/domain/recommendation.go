package domain

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// RecommendationList holds the elements of the model's JSON array exactly as
// the model wrote them. Items are not checked against RecommendationItem.
type RecommendationList []json.RawMessage

// ExtractRecommendations slices reply from its first '[' to its last ']' and
// parses that substring as a JSON array. Anything outside the brackets is
// ignored; anything malformed inside them is an error.
func ExtractRecommendations(reply string) (RecommendationList, error) {
	// Raw elements are passed through to clients, so they must be valid UTF-8.
	reply = strings.ToValidUTF8(reply, "\uFFFD")

	start := strings.IndexByte(reply, '[')
	end := strings.LastIndexByte(reply, ']')
	if start < 0 || end < start {
		return nil, ErrNoJSONArray
	}

	var list RecommendationList
	if err := json.Unmarshal([]byte(reply[start:end+1]), &list); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}
	if list == nil {
		list = RecommendationList{}
	}
	return list, nil
}

// Items decodes every element as a RecommendationItem. It fails on the first
// element that is not an object.
func (l RecommendationList) Items() ([]RecommendationItem, error) {
	items := make([]RecommendationItem, 0, len(l))
	for i, raw := range l {
		var item RecommendationItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("recommendation %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
