// Package dataset loads the vulnerability KPI table and caches it in memory.
// The table is always replaced wholesale; there are no incremental updates.
package dataset

import (
	"context"

	"github.com/secdash/kpi-backend/model"
)

// Source yields the full record set. Implementations must return records
// without derived flags; the store computes those against its reference date.
type Source interface {
	Load(ctx context.Context) ([]model.VulnerabilityRecord, error)
}
