package reporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/pipeline"
)

func TestOutputFormat_IsValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatConsole, true},
		{FormatJSON, true},
		{"yaml", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsValid(); got != tt.valid {
				t.Errorf("OutputFormat.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestNewReporter_InvalidFormat(t *testing.T) {
	if _, err := NewReporter("yaml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func sampleFilterResult() *pipeline.FilterResult {
	date := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	tx := models.NewTransaction(date, decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.NewFromInt(99))

	return &pipeline.FilterResult{
		Valid: []*models.ProcessedTransaction{
			models.NewProcessedTransaction(tx, decimal.NewFromInt(10)),
		},
		Invalid: []*models.InvalidTransaction{
			models.NewInvalidTransaction(tx, "Transaction outside provided k date ranges."),
		},
	}
}

func TestReporter_JSONOutput(t *testing.T) {
	rep, err := NewReporter(FormatJSON)
	if err != nil {
		t.Fatalf("NewReporter failed: %v", err)
	}

	var buf bytes.Buffer
	if err := rep.WriteTo(&buf, sampleFilterResult()); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	var decoded struct {
		Valid   []json.RawMessage `json:"valid"`
		Invalid []json.RawMessage `json:"invalid"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded.Valid) != 1 || len(decoded.Invalid) != 1 {
		t.Errorf("Decoded %d valid, %d invalid; want 1, 1", len(decoded.Valid), len(decoded.Invalid))
	}
}

func TestReporter_ConsoleFilterOutput(t *testing.T) {
	rep, err := NewReporter(FormatConsole)
	if err != nil {
		t.Fatalf("NewReporter failed: %v", err)
	}

	var buf bytes.Buffer
	if err := rep.WriteTo(&buf, sampleFilterResult()); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Filter Result",
		"Valid:   1",
		"Invalid: 1",
		"effective=10.00",
		"Transaction outside provided k date ranges.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Console output missing %q:\n%s", want, out)
		}
	}
}

func TestReporter_ConsoleReturnsOutput(t *testing.T) {
	rep, _ := NewReporter(FormatConsole)

	result := &pipeline.ReturnsResult{
		TotalAmount:  decimal.NewFromInt(101),
		TotalCeiling: decimal.NewFromInt(200),
		SavingsByDates: []models.SavingsByDate{
			{
				Start:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				End:          time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
				Amount:       decimal.NewFromInt(99),
				ReturnAmount: decimal.RequireFromString("113.35"),
				Profits:      decimal.RequireFromString("14.35"),
				TaxBenefit:   decimal.Zero,
			},
		},
	}

	var buf bytes.Buffer
	if err := rep.WriteTo(&buf, result); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Returns Result", "invested=99.00", "return=113.35"} {
		if !strings.Contains(out, want) {
			t.Errorf("Console output missing %q:\n%s", want, out)
		}
	}
}

func TestReporter_ConsoleFallbackToJSON(t *testing.T) {
	rep, _ := NewReporter(FormatConsole)

	var buf bytes.Buffer
	payload := map[string]string{"operation": "reverse_text"}
	if err := rep.WriteTo(&buf, payload); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Fallback output is not JSON: %v\n%s", err, buf.String())
	}
	if decoded["operation"] != "reverse_text" {
		t.Errorf("Decoded = %+v", decoded)
	}
}

func TestReporter_WriteFile(t *testing.T) {
	rep, _ := NewReporter(FormatJSON)
	path := filepath.Join(t.TempDir(), "out.json")

	if err := rep.WriteFile(path, sampleFilterResult()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("Written file is not valid JSON:\n%s", data)
	}
}
