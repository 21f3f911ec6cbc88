// Package chatbot answers security questions by matching them against a small
// knowledge base with embedding similarity.
package chatbot

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/embed"
	"github.com/secdash/kpi-backend/model"
)

// FallbackAnswer is returned when no knowledge-base entry clears the
// confidence threshold.
const FallbackAnswer = "I'm sorry, I couldn't find a specific answer to your question. For cybersecurity best practices, consider: regular vulnerability assessments, timely patch management, security training, and implementing defense-in-depth strategies."

// Responder matches user questions against the knowledge base. The stored
// questions are embedded once on first use and memoized; the KB is compiled
// in, so the vectors never go stale within a process.
type Responder struct {
	embedder  embed.Embedder
	kb        []model.KnowledgeBaseEntry
	threshold float64
	log       *zap.Logger

	mu     sync.Mutex
	kbVecs [][]float32
}

// NewResponder builds a responder over the given knowledge base. embedder may
// be nil, in which case every Answer call reports ErrUnavailable.
func NewResponder(embedder embed.Embedder, kb []model.KnowledgeBaseEntry, threshold float64, log *zap.Logger) *Responder {
	return &Responder{embedder: embedder, kb: kb, threshold: threshold, log: log}
}

// Available reports whether the responder has an embedding backend.
func (r *Responder) Available() bool { return r.embedder != nil }

// Answer embeds the question, scans the knowledge base for the most similar
// stored question and returns its answer when the similarity clears the
// threshold; otherwise the fallback text with confidence 0.
func (r *Responder) Answer(ctx context.Context, question string) (model.ChatResponse, error) {
	start := time.Now()

	if r.embedder == nil {
		return model.ChatResponse{}, embed.ErrUnavailable
	}

	kbVecs, err := r.knowledgeVectors(ctx)
	if err != nil {
		return model.ChatResponse{}, err
	}

	questionVec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return model.ChatResponse{}, err
	}

	bestScore := -1.0
	bestIdx := -1
	for i, vec := range kbVecs {
		score := embed.Cosine(questionVec, vec)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	elapsed := time.Since(start).Seconds()

	if bestIdx >= 0 && bestScore > r.threshold {
		r.log.Info("chatbot matched knowledge base entry",
			zap.String("category", r.kb[bestIdx].Category),
			zap.Float64("confidence", bestScore))
		return model.ChatResponse{
			Response:       r.kb[bestIdx].Answer,
			Confidence:     bestScore,
			ProcessingTime: elapsed,
		}, nil
	}

	r.log.Warn("chatbot found no relevant answer", zap.Float64("best_score", bestScore))
	return model.ChatResponse{
		Response:       FallbackAnswer,
		Confidence:     0,
		ProcessingTime: elapsed,
	}, nil
}

func (r *Responder) knowledgeVectors(ctx context.Context) ([][]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.kbVecs != nil {
		return r.kbVecs, nil
	}

	questions := make([]string, len(r.kb))
	for i, e := range r.kb {
		questions[i] = e.Question
	}
	vecs, err := r.embedder.EmbedBatch(ctx, questions)
	if err != nil {
		return nil, err
	}
	r.kbVecs = vecs
	return vecs, nil
}
