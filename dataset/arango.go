package dataset

import (
	"context"
	"fmt"

	"github.com/secdash/kpi-backend/database"
	"github.com/secdash/kpi-backend/model"
)

// ArangoSource reads the record table from the vulnerabilities collection.
// Documents carry the same field names as the spreadsheet columns, mapped via
// the model's JSON tags.
type ArangoSource struct {
	DB database.DBConnection
}

// NewArangoSource creates a source backed by an initialized connection.
func NewArangoSource(db database.DBConnection) *ArangoSource {
	return &ArangoSource{DB: db}
}

// Load implements Source by scanning the whole collection. The table is small
// (a KPI spreadsheet's worth of rows), so a full scan per reload is fine.
func (s *ArangoSource) Load(ctx context.Context) ([]model.VulnerabilityRecord, error) {
	query := `
		FOR v IN vulnerabilities
			RETURN v
	`
	cursor, err := s.DB.Database.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("query vulnerabilities: %w", err)
	}
	defer cursor.Close()

	var records []model.VulnerabilityRecord
	for cursor.HasMore() {
		var rec model.VulnerabilityRecord
		if _, err := cursor.ReadDocument(ctx, &rec); err != nil {
			return nil, fmt.Errorf("read vulnerability document: %w", err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("vulnerabilities collection is empty")
	}
	return records, nil
}
