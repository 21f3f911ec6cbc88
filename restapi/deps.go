package restapi

import (
	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/chatbot"
	"github.com/secdash/kpi-backend/config"
	"github.com/secdash/kpi-backend/dataset"
	"github.com/secdash/kpi-backend/kvcache"
	"github.com/secdash/kpi-backend/suggest"
)

// Deps bundles the components the route handlers work with. Cache may be nil
// (no valkey configured); everything else is required.
type Deps struct {
	Store  *dataset.Store
	Ranker *suggest.Ranker
	Chat   *chatbot.Responder
	Cache  kvcache.KVStore
	Config config.Config
	Logger *zap.Logger
}
