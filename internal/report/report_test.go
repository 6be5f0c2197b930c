package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bagtoad/imglist/internal/catalog"
	"github.com/bagtoad/imglist/internal/pathinfo"
)

func sampleRows() []catalog.Row {
	return []catalog.Row{
		{Record: pathinfo.Record{Project: "Proj", Period: "M3", Subunit: "D.I Foo, Bar", DisplayName: "Proj/M3/1. D.I Foo, Bar/a.png"}, URL: "https://example.com/a.png"},
		{Record: pathinfo.Record{Project: "Other", DisplayName: `Other/"quoted".png`}},
	}
}

func TestWriteCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "images.csv")
	if err := os.WriteFile(out, []byte("stale content that must disappear\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteCSV(out, catalog.Header, sampleRows()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Errorf("existing file was not overwritten:\n%s", data)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Errorf("expected trailing newline")
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "project,period,subunit,displayName,url" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][2] != "D.I Foo, Bar" {
		t.Errorf("embedded comma not preserved: %q", records[1][2])
	}
	if records[2][3] != `Other/"quoted".png` || records[2][4] != "" {
		t.Errorf("unexpected second row %v", records[2])
	}
}

func TestWriteCSVBadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "images.csv"), catalog.Header, nil)
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, sampleRows(), "images.csv")

	output := buf.String()
	checks := []string{
		"Wrote 2 rows to images.csv",
		"Rows without URL:    1",
		"Projects:            2",
		"Other (1 images)",
		"Proj (1 images)",
	}
	for _, check := range checks {
		if !strings.Contains(output, check) {
			t.Errorf("report missing %q\nFull output:\n%s", check, output)
		}
	}
}

func TestPrintReportSingleProject(t *testing.T) {
	rows := sampleRows()[:1]

	var buf bytes.Buffer
	Print(&buf, rows, "out.csv")

	output := buf.String()
	if !strings.Contains(output, "Wrote 1 rows to out.csv") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if strings.Contains(output, "Projects:") || strings.Contains(output, "without URL") {
		t.Errorf("single fully-linked project should print only the count:\n%s", output)
	}
}
