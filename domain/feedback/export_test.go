package feedback

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func exportFixture() []AdminFeedback {
	submitted := time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)
	return []AdminFeedback{
		{
			ID:        1,
			Category:  CategoryFacilities,
			Message:   "The library needs more power outlets, especially on the \"quiet\" floor",
			Status:    StatusPending,
			CreatedAt: submitted,
			UserName:  "Tashi",
			UserEmail: "tashi@college.edu",
		},
		{
			ID:          2,
			IsAnonymous: true,
			Category:    CategoryAcademics,
			Message:     "Please record lectures",
			Status:      StatusAddressed,
			CreatedAt:   submitted.Add(time.Hour),
			UserName:    "Anonymous",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, exportFixture()); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	wantHeader := []string{"Message", "Category", "Status", "User Name", "User Email", "Created At"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("unexpected header: %v", records[0])
		}
	}
	if records[1][3] != "Tashi" || records[1][1] != CategoryFacilities {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if !strings.Contains(records[1][0], `"quiet"`) {
		t.Fatal("quoting inside the message must survive the round trip")
	}
	if records[2][3] != "Anonymous" || records[2][4] != "" {
		t.Fatalf("anonymous row must not carry author details: %v", records[2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, nil); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("empty export must still carry the header, got %d records", len(records))
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := writePDF(&buf, exportFixture()); err != nil {
		t.Fatalf("writePDF: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
	if buf.Len() < 500 {
		t.Fatalf("PDF output suspiciously small: %d bytes", buf.Len())
	}
}
