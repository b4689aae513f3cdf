package tabular

import (
	"math"
	"strconv"
	"strings"

	"chartprep/domain/table"
)

// CellCoercer converts raw text cells into typed values and decides,
// per column, whether a field is numerical or categorical
type CellCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion thresholds
type CoercionConfig struct {
	// NumericThreshold is the fraction of non-empty cells in a column
	// that must parse as numbers for the column to classify numerical.
	NumericThreshold float64
	// TrimCells controls whitespace trimming before parsing.
	TrimCells bool
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 0.8,
		TrimCells:        true,
	}
}

// NewCellCoercer creates a coercer with the given config
func NewCellCoercer(config CoercionConfig) *CellCoercer {
	return &CellCoercer{config: config}
}

// ClassifyColumn decides the field type for one column of raw cells
func (c *CellCoercer) ClassifyColumn(cells []string) table.FieldType {
	nonEmpty := 0
	numeric := 0
	for _, cell := range cells {
		cell = c.clean(cell)
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, ok := c.tryParseNumeric(cell); ok {
			numeric++
		}
	}
	if nonEmpty == 0 {
		return table.FieldCategorical
	}
	if float64(numeric)/float64(nonEmpty) >= c.config.NumericThreshold {
		return table.FieldNumerical
	}
	return table.FieldCategorical
}

// CoerceCell converts one raw cell according to the column's type.
// Returns false when a cell in a numerical column does not parse.
func (c *CellCoercer) CoerceCell(cell string, fieldType table.FieldType) (table.Value, bool) {
	cell = c.clean(cell)
	if fieldType == table.FieldNumerical {
		n, ok := c.tryParseNumeric(cell)
		if !ok {
			return table.Value{}, false
		}
		return table.Number(n), true
	}
	return table.Text(cell), true
}

// tryParseNumeric parses a cell as a number, tolerating currency
// symbols, thousands separators, percent signs and parenthesized
// negatives as spreadsheets export them
func (c *CellCoercer) tryParseNumeric(cell string) (float64, bool) {
	if cell == "" {
		return 0, false
	}

	// (123) -> -123
	isNegative := false
	if strings.HasPrefix(cell, "(") && strings.HasSuffix(cell, ")") {
		cell = strings.TrimSuffix(strings.TrimPrefix(cell, "("), ")")
		isNegative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "%"} {
		cell = strings.ReplaceAll(cell, symbol, "")
	}
	cell = strings.ReplaceAll(cell, ",", "")
	cell = strings.TrimSpace(cell)

	if isNegative {
		cell = "-" + cell
	}

	val, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

func (c *CellCoercer) clean(cell string) string {
	if c.config.TrimCells {
		return strings.TrimSpace(cell)
	}
	return cell
}
