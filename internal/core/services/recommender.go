// Package services holds the recommendation adapter: validate a query, render
// the variant's prompt, call the completion provider once and extract the
// JSON array from its reply.
package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/ewilliams-labs/soundify/internal/core/domain"
	"github.com/ewilliams-labs/soundify/internal/core/ports"
	"github.com/ewilliams-labs/soundify/internal/logging"
	"github.com/ewilliams-labs/soundify/internal/metrics"
)

// Recommender runs a recommendation request for any Variant.
type Recommender struct {
	completion ports.CompletionProvider
	audit      ports.AuditSink
}

// NewRecommender constructs a Recommender. audit may be nil.
func NewRecommender(completion ports.CompletionProvider, audit ports.AuditSink) *Recommender {
	return &Recommender{
		completion: completion,
		audit:      audit,
	}
}

// Preview validates q and returns the prompt v would send, without calling
// the provider.
func (r *Recommender) Preview(v Variant, q domain.RecommendationQuery) (string, error) {
	if err := v.Validate(q); err != nil {
		return "", domain.BadRequest(err)
	}
	return v.Prompt(q), nil
}

// Recommend validates q, renders the prompt for v, submits it to the
// completion provider and extracts the recommendation array from the reply.
// Errors are *domain.Error values classified as bad request or upstream.
func (r *Recommender) Recommend(ctx context.Context, v Variant, q domain.RecommendationQuery) (domain.RecommendationList, error) {
	start := time.Now()
	list, err := r.recommend(ctx, v, q)
	r.finish(ctx, v, start, list, err)
	return list, err
}

// Reject reports a request that failed before a query could be decoded, so
// it shows up in metrics and the audit log like any other outcome.
func (r *Recommender) Reject(ctx context.Context, v Variant, err error) error {
	err = domain.BadRequest(err)
	r.finish(ctx, v, time.Now(), nil, err)
	return err
}

func (r *Recommender) recommend(ctx context.Context, v Variant, q domain.RecommendationQuery) (domain.RecommendationList, error) {
	prompt, err := r.Preview(v, q)
	if err != nil {
		return nil, err
	}
	if r.completion == nil {
		return nil, domain.Upstream(errors.New("service: completion provider not configured"))
	}

	callStart := time.Now()
	reply, err := r.completion.Complete(ctx, prompt)
	metrics.RecordCompletion(err, time.Since(callStart))
	if err != nil {
		return nil, domain.Upstream(err)
	}

	list, err := domain.ExtractRecommendations(reply)
	if err != nil {
		return nil, domain.Upstream(err)
	}
	return list, nil
}

func (r *Recommender) finish(ctx context.Context, v Variant, start time.Time, list domain.RecommendationList, err error) {
	outcome := domain.OutcomeFor(err)
	elapsed := time.Since(start)
	metrics.RecordRecommendation(v.Name(), outcome, len(list))

	if err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("variant", v.Name()).
			Str("outcome", outcome).
			Msg("recommendation request failed")
	} else {
		logging.Ctx(ctx).Info().
			Str("variant", v.Name()).
			Int("items", len(list)).
			Dur("elapsed", elapsed).
			Msg("recommendation request served")
	}

	if r.audit == nil {
		return
	}
	rec := domain.NewAuditRecord(logging.RequestIDFromContext(ctx), v.Name())
	rec.Outcome = outcome
	rec.Items = len(list)
	rec.Duration = elapsed
	if err != nil {
		rec.Error = truncate(err.Error(), 500)
	}
	r.audit.Submit(rec)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
