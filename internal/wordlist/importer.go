package wordlist

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Config defines how a wordlist file is read
type Config struct {
	WordColumn  string // Column with the word
	CountColumn string // Optional column with an occurrence count
	SheetName   string // Name of the sheet to import (Excel only)
	StartRow    int    // The row to start importing from (1-based index)
}

// DefaultConfig returns the default import configuration
func DefaultConfig() Config {
	return Config{
		WordColumn:  "A",
		CountColumn: "B",
		SheetName:   "Sheet1",
		StartRow:    1,
	}
}

// Result holds the outcome of a wordlist import
type Result struct {
	TotalRows   int
	Imported    int
	Skipped     int
	Errors      []string
	Frequencies map[string]int
}

var wordOnly = regexp.MustCompile(`^[a-zA-Z]+$`)

// Parse reads a wordlist from an Excel or CSV upload and returns the
// word frequencies found in it. The file format is chosen by extension.
func Parse(r io.Reader, filename string, config Config) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == ".csv" || ext == ".txt" {
		return parseCSV(r, config)
	}
	if ext == ".xlsx" || ext == ".xlsm" {
		return parseExcel(r, config)
	}
	return nil, fmt.Errorf("unsupported wordlist format: %s", ext)
}

// parseExcel reads words from an Excel workbook
func parseExcel(r io.Reader, config Config) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := newResult()
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		processRow(row, config, result, i+1)
	}
	return result, nil
}

// parseCSV reads words from a CSV file. Plain text lists with one word
// per line parse the same way.
func parseCSV(r io.Reader, config Config) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := newResult()
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		processRow(row, config, result, rowNum)
	}
	return result, nil
}

func newResult() *Result {
	return &Result{
		Errors:      make([]string, 0),
		Frequencies: make(map[string]int),
	}
}

// processRow extracts one word and its count from a row. Rows that do
// not contain a usable word are counted as skipped, not failed: header
// rows and section dividers are expected in real lists.
func processRow(row []string, config Config, result *Result, rowNum int) {
	result.TotalRows++

	var word, count string
	if colIdx := columnToIndex(config.WordColumn); colIdx >= 0 && colIdx < len(row) {
		word = row[colIdx]
	}
	if config.CountColumn != "" {
		if colIdx := columnToIndex(config.CountColumn); colIdx >= 0 && colIdx < len(row) {
			count = row[colIdx]
		}
	}

	word = cleanWord(word)
	if word == "" {
		result.Skipped++
		return
	}
	if !wordOnly.MatchString(word) {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: not a single word: %q", rowNum, word))
		return
	}

	n := parseIntOrDefault(count, 1, 1_000_000, 1)
	result.Frequencies[strings.ToLower(word)] += n
	result.Imported++
}

// cleanWord strips surrounding whitespace and parenthetical extras
// such as "go (went, gone)".
func cleanWord(word string) string {
	if idx := strings.Index(word, "("); idx > 0 {
		word = word[:idx]
	}
	return strings.TrimSpace(word)
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

// parseIntOrDefault parses an integer clamped to [min, max], falling
// back to defaultVal when the cell is empty or not a number.
func parseIntOrDefault(s string, min, max, defaultVal int) int {
	var val int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &val); err != nil {
		return defaultVal
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
