package rest

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/soundify/internal/core/domain"
	"github.com/ewilliams-labs/soundify/internal/core/services"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("empty request body")

type recommendationsResponse struct {
	Recommendations domain.RecommendationList `json:"recommendations"`
}

// Recommend returns the handler for one variant. upstreamStatus is the code
// used when the provider call or reply extraction fails.
func (h *Handler) Recommend(v services.Variant, upstreamStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := decodeQuery(w, r)
		if err != nil {
			err = h.svc.Reject(r.Context(), v, err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		list, err := h.svc.Recommend(r.Context(), v, q)
		if err != nil {
			status := http.StatusBadRequest
			if domain.KindOf(err) == domain.KindUpstream {
				status = upstreamStatus
			}
			writeError(w, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, recommendationsResponse{Recommendations: list})
	}
}

func decodeQuery(w http.ResponseWriter, r *http.Request) (domain.RecommendationQuery, error) {
	var q domain.RecommendationQuery

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return q, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return q, errEmptyBody
	}
	if trimmed[0] != '{' {
		return q, domain.ErrNotObject
	}
	if err := json.Unmarshal(trimmed, &q); err != nil {
		return q, err
	}
	return q, nil
}
