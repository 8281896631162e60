// Package parsers loads expense exports and request payloads from disk.
//
// Expense CSV files come from a variety of banking exports, so the parser
// tolerates header aliases, multiple timestamp layouts, and currency
// symbols in amounts. Rows that fail to parse are collected as errors in
// the parse stats rather than aborting the whole file.
package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	apperrors "github.com/Ayushs1043/blackrock-savings-challenge/pkg/errors"
	"github.com/Ayushs1043/blackrock-savings-challenge/pkg/logger"
)

// ExpenseParserConfig controls how expense CSV files are interpreted.
type ExpenseParserConfig struct {
	TimestampColumn string
	AmountColumn    string
	HasHeader       bool
	Delimiter       rune
	ColumnAliases   map[string]string
}

// DefaultExpenseParserConfig returns a configuration matching the common
// expense export shape.
func DefaultExpenseParserConfig() *ExpenseParserConfig {
	return &ExpenseParserConfig{
		TimestampColumn: "timestamp",
		AmountColumn:    "amount",
		HasHeader:       true,
		Delimiter:       ',',
		ColumnAliases: map[string]string{
			"date":     "timestamp",
			"datetime": "timestamp",
			"time":     "timestamp",
			"amt":      "amount",
			"value":    "amount",
			"spend":    "amount",
		},
	}
}

// ParseStats summarizes a parse run.
type ParseStats struct {
	TotalRows   int     `json:"total_rows"`
	ParsedRows  int     `json:"parsed_rows"`
	SkippedRows int     `json:"skipped_rows"`
	Errors      []error `json:"-"`
}

// ExpenseParser reads expense rows from CSV files.
type ExpenseParser struct {
	config *ExpenseParserConfig
	logger logger.Logger
}

// NewExpenseParser creates a parser with the given configuration.
func NewExpenseParser(config *ExpenseParserConfig) *ExpenseParser {
	if config == nil {
		config = DefaultExpenseParserConfig()
	}
	return &ExpenseParser{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("expense_parser"),
	}
}

// ParseFile reads and parses an expense CSV file.
func (p *ExpenseParser) ParseFile(path string) ([]models.Expense, *ParseStats, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.FileError(apperrors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, nil, apperrors.FileError(apperrors.CodeFilePermission, path, err)
		}
		return nil, nil, apperrors.Wrap(err, apperrors.CategoryFile, apperrors.CodeFileNotFound,
			fmt.Sprintf("failed to open expense file: %s", path))
	}
	defer file.Close()

	expenses, stats, err := p.Parse(file, path)
	if err != nil {
		return nil, stats, err
	}

	p.logger.WithFields(logger.Fields{
		"file":    path,
		"parsed":  stats.ParsedRows,
		"skipped": stats.SkippedRows,
	}).Info("Parsed expense file")

	return expenses, stats, nil
}

// Parse reads expense rows from a reader. The source name is used in error
// messages only.
func (p *ExpenseParser) Parse(r io.Reader, source string) ([]models.Expense, *ParseStats, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.config.Delimiter
	reader.TrimLeadingSpace = true

	stats := &ParseStats{}

	timestampIdx := 0
	amountIdx := 1
	line := 0

	if p.config.HasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return []models.Expense{}, stats, nil
		}
		if err != nil {
			return nil, stats, apperrors.ParseError(apperrors.CodeInvalidFormat, source, 1, "", "", err)
		}
		line++

		timestampIdx, amountIdx = -1, -1
		for i, col := range header {
			switch p.resolveColumn(col) {
			case p.config.TimestampColumn:
				timestampIdx = i
			case p.config.AmountColumn:
				amountIdx = i
			}
		}

		if timestampIdx < 0 {
			return nil, stats, apperrors.ParseError(apperrors.CodeMissingColumn, source, 1, p.config.TimestampColumn, "", nil)
		}
		if amountIdx < 0 {
			return nil, stats, apperrors.ParseError(apperrors.CodeMissingColumn, source, 1, p.config.AmountColumn, "", nil)
		}
	}

	var expenses []models.Expense
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			stats.TotalRows++
			stats.SkippedRows++
			stats.Errors = append(stats.Errors,
				apperrors.ParseError(apperrors.CodeInvalidFormat, source, line, "", "", err))
			continue
		}

		stats.TotalRows++

		if timestampIdx >= len(record) || amountIdx >= len(record) {
			stats.SkippedRows++
			stats.Errors = append(stats.Errors,
				apperrors.ParseError(apperrors.CodeInvalidData, source, line, "", strings.Join(record, ","), nil))
			continue
		}

		timestamp, err := models.ParseTime(record[timestampIdx])
		if err != nil {
			stats.SkippedRows++
			stats.Errors = append(stats.Errors,
				apperrors.ParseError(apperrors.CodeInvalidData, source, line, p.config.TimestampColumn, record[timestampIdx], err))
			continue
		}

		amount, err := models.ParseAmount(cleanAmount(record[amountIdx]))
		if err != nil {
			stats.SkippedRows++
			stats.Errors = append(stats.Errors,
				apperrors.ParseError(apperrors.CodeInvalidData, source, line, p.config.AmountColumn, record[amountIdx], err))
			continue
		}

		expenses = append(expenses, models.Expense{Timestamp: timestamp, Amount: amount})
		stats.ParsedRows++
	}

	return expenses, stats, nil
}

// resolveColumn normalizes a header cell and applies the alias table.
func (p *ExpenseParser) resolveColumn(col string) string {
	normalized := strings.ToLower(strings.TrimSpace(col))
	if canonical, ok := p.config.ColumnAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// cleanAmount strips currency symbols and thousand separators.
func cleanAmount(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}
