package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/secdash/kpi-backend/model"
)

// Column names expected in the spreadsheet.
const (
	colOwnerID     = "Application_Owner_ID"
	colOwnerName   = "Application_Owner_Name"
	colDeptName    = "Dept_Name"
	colApplication = "Application_Name"
	colAsset       = "Asset_Name"
	colDescription = "Vulnerability_Description"
	colSeverity    = "Vulnerability_Severity"
	colCVSS        = "CVSS_Score"
	colRisk        = "Risk_Score"
	colStatus      = "Status"
	colFirstDet    = "First_Detected_Date"
	colClosure     = "Closure_Date"
	colDaysToClose = "Days_to_Close"
	colRepeats     = "Number_of_Repeats"
)

// dateLayouts covers the formats excelize yields for date cells depending on
// the cell style.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
}

// XLSXSource reads the KPI spreadsheet from disk.
type XLSXSource struct {
	Path string
}

// NewXLSXSource creates a source for the spreadsheet at path.
func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{Path: path}
}

// Load implements Source, reading the first sheet of the workbook.
func (s *XLSXSource) Load(_ context.Context) ([]model.VulnerabilityRecord, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", s.Path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("spreadsheet %s has no data rows", s.Path)
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colOwnerID, colOwnerName, colDeptName, colApplication, colSeverity, colCVSS, colRisk, colStatus, colFirstDet} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("spreadsheet %s is missing column %s", s.Path, required)
		}
	}

	records := make([]model.VulnerabilityRecord, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := model.VulnerabilityRecord{
			OwnerID:     cell(colOwnerID),
			OwnerName:   cell(colOwnerName),
			DeptName:    cell(colDeptName),
			Application: cell(colApplication),
			Asset:       cell(colAsset),
			Description: cell(colDescription),
			Severity:    model.Severity(cell(colSeverity)),
			Status:      model.Status(cell(colStatus)),
		}
		if rec.OwnerID == "" {
			continue // trailing blank row
		}

		if rec.CVSSScore, err = parseFloat(cell(colCVSS)); err != nil {
			return nil, fmt.Errorf("row %d: bad %s: %w", rowNum+2, colCVSS, err)
		}
		if rec.RiskScore, err = parseFloat(cell(colRisk)); err != nil {
			return nil, fmt.Errorf("row %d: bad %s: %w", rowNum+2, colRisk, err)
		}
		if rec.Repeats, err = parseFloat(cell(colRepeats)); err != nil {
			return nil, fmt.Errorf("row %d: bad %s: %w", rowNum+2, colRepeats, err)
		}

		if rec.FirstDet, err = parseDate(cell(colFirstDet)); err != nil {
			return nil, fmt.Errorf("row %d: bad %s: %w", rowNum+2, colFirstDet, err)
		}
		if v := cell(colClosure); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad %s: %w", rowNum+2, colClosure, err)
			}
			rec.ClosedAt = &t
		}
		if v := cell(colDaysToClose); v != "" {
			d, err := parseFloat(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad %s: %w", rowNum+2, colDaysToClose, err)
			}
			rec.DaysToClose = &d
		}

		records = append(records, rec)
	}

	return records, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
