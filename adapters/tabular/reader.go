package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chartprep/domain/table"
	"chartprep/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Reader loads CSV and XLSX files into datasets
type Reader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	sheetName string
	coercer   *CellCoercer
}

// NewReader creates a reader for the given file, picking the format
// from the extension
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{
		filePath:  filePath,
		fileType:  fileType,
		sheetName: "Sheet1",
		coercer:   NewCellCoercer(DefaultCoercionConfig()),
	}
}

// WithSheet overrides the worksheet read from XLSX files
func (r *Reader) WithSheet(name string) *Reader {
	r.sheetName = name
	return r
}

// Read loads the file into a dataset. The first row supplies field
// names; column types come from threshold-based cell analysis.
func (r *Reader) Read() (table.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return table.Dataset{}, errors.IngestError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath), err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return table.Dataset{}, errors.IngestError(fmt.Sprintf("unsupported file type: %s", r.fileType), nil)
	}
	if err != nil {
		return table.Dataset{}, err
	}

	return r.buildDataset(rows)
}

func (r *Reader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IngestError("failed to open CSV file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows surface in buildDataset
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IngestError("failed to parse CSV file", err)
	}
	return rows, nil
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IngestError("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, errors.IngestError(fmt.Sprintf("failed to read sheet %s", r.sheetName), err)
	}
	return rows, nil
}

// buildDataset turns header + data rows into typed records
func (r *Reader) buildDataset(rows [][]string) (table.Dataset, error) {
	if len(rows) < 2 {
		return table.Dataset{}, errors.IngestError("file needs a header row and at least one data row", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			return table.Dataset{}, errors.IngestError(fmt.Sprintf("empty header in column %d", i+1), nil)
		}
	}

	dataRows := rows[1:]

	// Classify each column over all of its cells.
	columnTypes := make([]table.FieldType, len(headers))
	for col := range headers {
		cells := make([]string, 0, len(dataRows))
		for _, row := range dataRows {
			if col < len(row) {
				cells = append(cells, row[col])
			}
		}
		columnTypes[col] = r.coercer.ClassifyColumn(cells)
	}

	records := make([]table.Record, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		if len(row) < len(headers) {
			return table.Dataset{}, errors.IngestError(fmt.Sprintf("row %d has %d cells, expected %d", rowIdx+2, len(row), len(headers)), nil)
		}
		record := make(table.Record, len(headers))
		for col, header := range headers {
			value, ok := r.coercer.CoerceCell(row[col], columnTypes[col])
			if !ok {
				return table.Dataset{}, errors.IngestError(fmt.Sprintf("cell %q in row %d does not parse as a number for column %s", row[col], rowIdx+2, header), nil)
			}
			record[header] = value
		}
		records = append(records, record)
	}

	dataset := table.New(records)
	dataset.Name = filepath.Base(r.filePath)
	return dataset, nil
}
