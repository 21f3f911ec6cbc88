package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/analytics"
	"github.com/secdash/kpi-backend/config"
	"github.com/secdash/kpi-backend/dataset"
	"github.com/secdash/kpi-backend/embed"
	"github.com/secdash/kpi-backend/model"
)

const (
	maxSuggestions      = 5
	maxMultiSuggestions = 10
)

// Ranker selects, formats, scores and orders suggestions for an owner.
// A nil embedder puts the ranker in weight-only mode permanently; a failing
// embedder does so per request.
type Ranker struct {
	store      *dataset.Store
	embedder   embed.Embedder
	bank       []Template
	thresholds config.Thresholds
	log        *zap.Logger
}

// NewRanker builds a ranker over the standard template bank.
func NewRanker(store *dataset.Store, embedder embed.Embedder, th config.Thresholds, log *zap.Logger) *Ranker {
	return &Ranker{
		store:      store,
		embedder:   embedder,
		bank:       Bank(),
		thresholds: th,
		log:        log,
	}
}

// MLScoringEnabled reports whether embedding-based scoring is configured.
func (r *Ranker) MLScoringEnabled() bool { return r.embedder != nil }

// Rank returns at most five suggestions for ownerID, ordered by
// relevance x weight when the embedding model is usable, by weight alone
// otherwise. Both sorts are stable, so enumeration order breaks ties.
func (r *Ranker) Rank(ctx context.Context, ownerID string) (model.SuggestionResponse, error) {
	start := time.Now()

	metrics, err := analytics.OwnerMetricsFor(r.store.Records(ctx), ownerID)
	if err != nil {
		return model.SuggestionResponse{}, err
	}

	candidates := r.applicable(metrics)
	r.score(ctx, metrics, candidates)

	// Generated counts every applicable template, including those cut by
	// the top-five cap.
	generated := len(candidates)
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	if candidates == nil {
		candidates = []model.Suggestion{}
	}

	return model.SuggestionResponse{
		OwnerID:     metrics.OwnerID,
		OwnerName:   metrics.OwnerName,
		Suggestions: candidates,
		Metrics:     metrics.Map(),
		Performance: model.Performance{
			ProcessingTime:       time.Since(start).Seconds(),
			SuggestionsGenerated: generated,
			MLScoringEnabled:     r.MLScoringEnabled(),
		},
	}, nil
}

// RankMany runs Rank per owner, merges all suggestions tagged with their
// owner, sorts the merged list by relevance alone and truncates to ten.
func (r *Ranker) RankMany(ctx context.Context, ownerIDs []string) (model.MultiSuggestionsResponse, error) {
	start := time.Now()

	var merged []model.Suggestion
	processed := 0
	for _, id := range ownerIDs {
		res, err := r.Rank(ctx, id)
		if err != nil {
			return model.MultiSuggestionsResponse{}, err
		}
		for _, s := range res.Suggestions {
			s.OwnerID = res.OwnerID
			s.OwnerName = res.OwnerName
			merged = append(merged, s)
		}
		processed++
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})
	if len(merged) > maxMultiSuggestions {
		merged = merged[:maxMultiSuggestions]
	}
	if merged == nil {
		merged = []model.Suggestion{}
	}

	return model.MultiSuggestionsResponse{
		Suggestions: merged,
		TotalOwners: processed,
		Performance: model.Performance{
			ProcessingTime:       time.Since(start).Seconds(),
			SuggestionsGenerated: len(merged),
			MLScoringEnabled:     r.MLScoringEnabled(),
		},
	}, nil
}

// applicable evaluates every template predicate and formats the matching
// ones. A template whose formatting reports a missing field is dropped with
// a warning, not a failure.
func (r *Ranker) applicable(m model.OwnerMetrics) []model.Suggestion {
	var out []model.Suggestion
	for _, t := range r.bank {
		if !t.Applies(m, r.thresholds) {
			continue
		}
		text, ok := t.Format(m)
		if !ok {
			r.log.Warn("skipping suggestion template, metric field absent",
				zap.String("template", t.ID), zap.String("owner", m.OwnerID))
			continue
		}
		out = append(out, model.Suggestion{
			Text:     text,
			Priority: t.Priority,
			Weight:   t.Weight,
		})
	}
	return out
}

// score fills relevance scores via the embedding model and sorts candidates.
// Any embedding failure falls back to the weight-only ordering with scores
// left at zero; the request still succeeds.
func (r *Ranker) score(ctx context.Context, m model.OwnerMetrics, candidates []model.Suggestion) {
	if r.embedder != nil && len(candidates) > 0 {
		err := r.scoreByRelevance(ctx, m, candidates)
		if err == nil {
			sort.SliceStable(candidates, func(i, j int) bool {
				return candidates[i].RelevanceScore*candidates[i].Weight >
					candidates[j].RelevanceScore*candidates[j].Weight
			})
			return
		}
		r.log.Warn("embedding-based scoring failed, using template weights", zap.Error(err))
		for i := range candidates {
			candidates[i].RelevanceScore = 0
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})
}

func (r *Ranker) scoreByRelevance(ctx context.Context, m model.OwnerMetrics, candidates []model.Suggestion) error {
	contextVec, err := r.embedder.Embed(ctx, ownerContext(m))
	if err != nil {
		return err
	}

	texts := make([]string, len(candidates))
	for i, s := range candidates {
		texts[i] = s.Text
	}
	vecs, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}

	for i := range candidates {
		candidates[i].RelevanceScore = embed.Cosine(contextVec, vecs[i])
	}
	return nil
}

// ownerContext builds the summary string the candidate texts are compared
// against: identity plus the six numeric metrics in fixed order.
func ownerContext(m model.OwnerMetrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Application Owner: %s (%s)\n", m.OwnerID, m.OwnerName)
	fmt.Fprintf(&b, "Department: %s\n", m.DeptName)
	fmt.Fprintf(&b, "Critical/High vulnerabilities: %d\n", m.CriticalHighCount)
	fmt.Fprintf(&b, "Vulnerabilities > 30 days: %d\n", m.OldVulnsCount)
	fmt.Fprintf(&b, "Average closure time: %s days\n", formatAvg(m.AvgDaysToClose))
	fmt.Fprintf(&b, "High risk items: %d\n", m.HighRiskCount)
	fmt.Fprintf(&b, "Total vulnerabilities: %d\n", m.TotalCount)
	return b.String()
}

// formatAvg renders an undefined average as N/A rather than inventing a number.
func formatAvg(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}
