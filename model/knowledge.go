// Package model - KnowledgeBaseEntry is one question/answer pair served by the chatbot.
package model

// KnowledgeBaseEntry pairs a canonical question with its stored answer. The
// chatbot matches user questions against Question by embedding similarity.
type KnowledgeBaseEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}
