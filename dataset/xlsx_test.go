package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

var xlsxHeader = []interface{}{
	"Application_Owner_ID", "Application_Owner_Name", "Dept_Name", "Application_Name",
	"Asset_Name", "Vulnerability_Description", "Vulnerability_Severity", "CVSS_Score",
	"Risk_Score", "Status", "First_Detected_Date", "Closure_Date", "Days_to_Close",
	"Number_of_Repeats",
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	all := append([][]interface{}{xlsxHeader}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "kpi.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestXLSXLoadParsesRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"AO1", "Alice Smith", "IT Security", "Payroll", "srv-01", "SQL injection",
			"Critical", "9.8", "8.5", "Closed", "2025-03-01", "2025-03-15", "14", "2"},
		{"AO2", "Bob Jones", "IT Security", "CRM", "srv-02", "Weak TLS",
			"Low", "3.1", "2.0", "Open", "2025-05-01", "", "", "0"},
	})

	records, err := NewXLSXSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.OwnerID != "AO1" || first.Application != "Payroll" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.CVSSScore != 9.8 {
		t.Fatalf("expected CVSS 9.8, got %v", first.CVSSScore)
	}
	if first.DaysToClose == nil || *first.DaysToClose != 14 {
		t.Fatalf("expected 14 days to close, got %v", first.DaysToClose)
	}
	if first.ClosedAt == nil {
		t.Fatal("expected closure date parsed")
	}

	second := records[1]
	if second.DaysToClose != nil {
		t.Fatalf("expected open record without days to close, got %v", *second.DaysToClose)
	}
	if second.ClosedAt != nil {
		t.Fatal("expected open record without closure date")
	}
}

func TestXLSXLoadSkipsBlankTrailingRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"AO1", "Alice Smith", "IT Security", "Payroll", "srv-01", "XSS",
			"High", "7.4", "6.0", "Open", "2025-05-01", "", "", "1"},
		{"", "", "", "", "", "", "", "", "", "", "", "", "", ""},
	})

	records, err := NewXLSXSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected blank row skipped, got %d records", len(records))
	}
}

func TestXLSXLoadMissingColumn(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Application_Owner_ID", "Dept_Name"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("set header: %v", err)
	}
	row := []interface{}{"AO1", "IT Security"}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatalf("set row: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	if _, err := NewXLSXSource(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestXLSXLoadBadNumber(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"AO1", "Alice Smith", "IT Security", "Payroll", "srv-01", "XSS",
			"High", "not-a-number", "6.0", "Open", "2025-05-01", "", "", "1"},
	})

	if _, err := NewXLSXSource(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for non-numeric CVSS cell")
	}
}

func TestXLSXLoadMissingFile(t *testing.T) {
	if _, err := NewXLSXSource("does-not-exist.xlsx").Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
