package service

import (
	"bytes"
	"encoding/csv"

	"github.com/roamfare/roamfare/internal/logger"
)

// CSVProcessor handles CSV-specific operations
type CSVProcessor struct {
	Logger *logger.Logger
}

// NewCSVProcessor creates a new CSV processor
func NewCSVProcessor(logger *logger.Logger) *CSVProcessor {
	return &CSVProcessor{
		Logger: logger,
	}
}

// PrepareCSVReader creates a configured CSV reader from the file content.
// Agent spreadsheets arrive from Excel exports, so the reader is deliberately
// forgiving about quoting and ragged rows; row-level validation happens later.
func (cp *CSVProcessor) PrepareCSVReader(fileContent []byte) (*csv.Reader, error) {
	// Strip the UTF-8 BOM Excel prepends on export
	if len(fileContent) >= 3 && fileContent[0] == 0xEF && fileContent[1] == 0xBB && fileContent[2] == 0xBF {
		fileContent = fileContent[3:]
		cp.Logger.Debug("BOM detected and removed from file content")
	}

	reader := csv.NewReader(bytes.NewReader(fileContent))

	reader.LazyQuotes = true       // Allow lazy quotes
	reader.FieldsPerRecord = -1    // Allow variable number of fields
	reader.TrimLeadingSpace = true // Trim leading space

	return reader, nil
}
