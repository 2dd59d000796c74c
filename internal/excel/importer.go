package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/example/vocabreview/pkg/models"
)

// Memorizer adds items to a learner's schedulable set
type Memorizer interface {
	MarkMemorized(ctx context.Context, key models.RecordKey, now time.Time) (bool, error)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	UserColumn       string // Column with the learner id
	LevelColumn      string // Column with the level
	LessonTypeColumn string // Column with the lesson type
	ItemColumn       string // Column with the item id
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
	DefaultUserID    string // Used when the user column is empty
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		UserColumn:       "A",
		LevelColumn:      "B",
		LessonTypeColumn: "C",
		ItemColumn:       "D",
		SheetName:        "Sheet1",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Existing       int
	Skipped        int
	Errors         []string
}

// Importer loads memorized items from spreadsheets into the record store
type Importer struct {
	store Memorizer
	now   func() time.Time
}

// NewImporter creates an importer writing through store
func NewImporter(store Memorizer) *Importer {
	return &Importer{store: store, now: time.Now}
}

// Import reads an Excel or CSV file and marks every listed item memorized
func (im *Importer) Import(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return im.importFromCSV(ctx, config)
	}
	return im.importFromExcel(ctx, config)
}

func (im *Importer) importFromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get rows")
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if err := im.processRow(ctx, row, config, result, i+1); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (im *Importer) importFromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, errors.Wrap(err, "error reading CSV")
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		if err := im.processRow(ctx, row, config, result, rowNum); err != nil {
			return result, err
		}
	}
	return result, nil
}

// processRow returns an error only when the import has to stop; bad rows are recorded in result
func (im *Importer) processRow(ctx context.Context, row []string, config ImportConfig, result *ImportResult, rowNum int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if isBlankRow(row) {
		result.Skipped++
		return nil
	}

	result.TotalProcessed++

	key := models.RecordKey{
		UserID:     cell(row, config.UserColumn),
		Level:      cell(row, config.LevelColumn),
		LessonType: cell(row, config.LessonTypeColumn),
		ItemID:     cell(row, config.ItemColumn),
	}
	if key.UserID == "" {
		key.UserID = config.DefaultUserID
	}
	if err := validateKey(key); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return nil
	}

	created, err := im.store.MarkMemorized(ctx, key, im.now())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return nil
	}
	if created {
		result.Created++
	} else {
		result.Existing++
	}
	return nil
}

func validateKey(key models.RecordKey) error {
	switch {
	case key.UserID == "":
		return fmt.Errorf("user id cannot be empty")
	case key.Level == "":
		return fmt.Errorf("level cannot be empty")
	case key.LessonType == "":
		return fmt.Errorf("lesson type cannot be empty")
	case key.ItemID == "":
		return fmt.Errorf("item cannot be empty")
	}
	return nil
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
