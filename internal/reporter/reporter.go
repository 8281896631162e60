// Package reporter renders operation results for terminal display or
// programmatic consumption.
//
// Two formats are supported: console output for humans, with summary
// tables per result shape, and indented JSON mirroring the payload schema.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/pipeline"
	apperrors "github.com/Ayushs1043/blackrock-savings-challenge/pkg/errors"
)

// OutputFormat represents the supported report output formats.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	return f == FormatConsole || f == FormatJSON
}

// Reporter writes operation results in the configured format.
type Reporter struct {
	format OutputFormat
}

// NewReporter creates a reporter for the given format.
func NewReporter(format OutputFormat) (*Reporter, error) {
	if !format.IsValid() {
		return nil, apperrors.ConfigurationError(apperrors.CodeInvalidConfig, "output-format", format, nil).
			WithSuggestion("valid formats: console, json")
	}
	return &Reporter{format: format}, nil
}

// WriteTo renders the result to the writer.
func (r *Reporter) WriteTo(w io.Writer, result interface{}) error {
	if r.format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return writeConsole(w, result)
}

// WriteFile renders the result to a file, or to stdout when path is empty.
func (r *Reporter) WriteFile(path string, result interface{}) error {
	if path == "" {
		return r.WriteTo(os.Stdout, result)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFile, apperrors.CodeFilePermission,
			fmt.Sprintf("failed to create output file: %s", path))
	}
	defer file.Close()

	return r.WriteTo(file, result)
}

// writeConsole dispatches on the known result shapes, falling back to JSON
// for anything unrecognized.
func writeConsole(w io.Writer, result interface{}) error {
	switch v := result.(type) {
	case *pipeline.ParseResult:
		return writeParseConsole(w, v)
	case *pipeline.ValidateResult:
		return writeValidateConsole(w, v)
	case *pipeline.FilterResult:
		return writeFilterConsole(w, v)
	case *pipeline.ReturnsResult:
		return writeReturnsConsole(w, v)
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
}

func writeHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

func writeParseConsole(w io.Writer, result *pipeline.ParseResult) error {
	writeHeader(w, "Parsed Transactions")
	fmt.Fprintf(w, "Transactions: %d\n", len(result.Transactions))
	fmt.Fprintf(w, "Total amount:   %s\n", result.TotalAmount.StringFixed(2))
	fmt.Fprintf(w, "Total ceiling:  %s\n", result.TotalCeiling.StringFixed(2))
	fmt.Fprintf(w, "Total remanent: %s\n", result.TotalRemanent.StringFixed(2))
	fmt.Fprintln(w)

	for _, tx := range result.Transactions {
		fmt.Fprintf(w, "  %s  amount=%s ceiling=%s remanent=%s\n",
			models.FormatTime(tx.Date), tx.Amount.StringFixed(2),
			tx.Ceiling.StringFixed(2), tx.Remanent.StringFixed(2))
	}
	return nil
}

func writeValidateConsole(w io.Writer, result *pipeline.ValidateResult) error {
	writeHeader(w, "Validation Result")
	fmt.Fprintf(w, "Valid:      %d\n", len(result.Valid))
	fmt.Fprintf(w, "Invalid:    %d\n", len(result.Invalid))
	fmt.Fprintf(w, "Duplicates: %d\n", len(result.Duplicates))

	writeInvalidSection(w, "Invalid transactions", result.Invalid)
	writeInvalidSection(w, "Duplicate transactions", result.Duplicates)
	return nil
}

func writeFilterConsole(w io.Writer, result *pipeline.FilterResult) error {
	writeHeader(w, "Filter Result")
	fmt.Fprintf(w, "Valid:   %d\n", len(result.Valid))
	fmt.Fprintf(w, "Invalid: %d\n", len(result.Invalid))
	fmt.Fprintln(w)

	for _, tx := range result.Valid {
		fmt.Fprintf(w, "  %s  remanent=%s effective=%s\n",
			models.FormatTime(tx.Date), tx.Remanent.StringFixed(2),
			tx.EffectiveRemanent.StringFixed(2))
	}

	writeInvalidSection(w, "Rejected transactions", result.Invalid)
	return nil
}

func writeReturnsConsole(w io.Writer, result *pipeline.ReturnsResult) error {
	writeHeader(w, "Returns Result")
	fmt.Fprintf(w, "Total amount:  %s\n", result.TotalAmount.StringFixed(2))
	fmt.Fprintf(w, "Total ceiling: %s\n", result.TotalCeiling.StringFixed(2))
	fmt.Fprintln(w)

	for _, s := range result.SavingsByDates {
		fmt.Fprintf(w, "  %s .. %s\n", models.FormatTime(s.Start), models.FormatTime(s.End))
		fmt.Fprintf(w, "    invested=%s return=%s profits=%s taxBenefit=%s\n",
			s.Amount.StringFixed(2), s.ReturnAmount.StringFixed(2),
			s.Profits.StringFixed(2), s.TaxBenefit.StringFixed(2))
	}
	return nil
}

func writeInvalidSection(w io.Writer, title string, invalid []*models.InvalidTransaction) {
	if len(invalid) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, tx := range invalid {
		fmt.Fprintf(w, "  %s  amount=%s: %s\n",
			models.FormatTime(tx.Date), tx.Amount.StringFixed(2), tx.Message)
	}
}
