package source

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ReadXLSX opens a workbook file and builds a table from one sheet
func ReadXLSX(path string, opts Options) (*datatable.DataTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return FromWorkbook(f, opts)
}

// ReadXLSXFrom builds a table from a workbook stream
func ReadXLSXFrom(r io.Reader, opts Options) (*datatable.DataTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return FromWorkbook(f, opts)
}

// FromWorkbook builds a table from one sheet of an open workbook. Cell types
// and number formats of the first non-empty data cell decide each column type.
func FromWorkbook(f *excelize.File, opts Options) (*datatable.DataTable, error) {
	sheet, err := pickSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}

	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrEmptySource, sheet)
	}

	first := 0
	names := make([]string, width)
	if !opts.NoHeader {
		for i := range names {
			names[i] = cellAt(grid[0], i)
		}
		first = 1
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	types := make([]datatable.ColumnType, width)
	for col := range types {
		types[col] = sheetColumnType(f, sheet, grid, first, col, names[col], opts)
	}

	dt := opts.newTable()
	if err := addColumns(dt, names, types); err != nil {
		return nil, err
	}

	loc := dt.Location()
	for r := first; r < len(grid); r++ {
		values := make([]interface{}, width)
		for col := range values {
			values[col] = sheetValue(types[col], cellAt(grid[r], col), date1904, loc)
		}
		if err := dt.AddRow(values); err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, r+1, err)
		}
	}

	opts.logger().Debug("sheet loaded",
		zap.String("sheet", sheet),
		zap.Int("columns", width),
		zap.Int("rows", dt.RowCount()))
	return dt, nil
}

func pickSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
	}
	if name == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (sheets are %s)", ErrSheetNotFound, name, strings.Join(sheets, ", "))
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func sheetColumnType(f *excelize.File, sheet string, grid [][]string, first, col int, name string, opts Options) datatable.ColumnType {
	if t, ok := opts.Types[name]; ok {
		return t
	}

	for r := first; r < len(grid); r++ {
		raw := cellAt(grid[r], col)
		if raw == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, r+1)
		if err != nil {
			break
		}
		return classifyCell(f, sheet, cell, raw)
	}
	return datatable.TypeString
}

func classifyCell(f *excelize.File, sheet, cell, raw string) datatable.ColumnType {
	kind, err := f.GetCellType(sheet, cell)
	if err != nil {
		return datatable.TypeString
	}

	switch kind {
	case excelize.CellTypeBool:
		return datatable.TypeBoolean
	case excelize.CellTypeDate:
		return datatable.TypeDateTime
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if t, ok := dateStyleType(f, sheet, cell); ok {
			return t
		}
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			return datatable.TypeNumber
		}
	}
	return datatable.TypeString
}

// dateStyleType recognizes date and time number formats on numeric cells
func dateStyleType(f *excelize.File, sheet, cell string) (datatable.ColumnType, bool) {
	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return 0, false
	}
	style, err := f.GetStyle(idx)
	if err != nil || style == nil {
		return 0, false
	}

	if style.CustomNumFmt != nil {
		return classifyNumFmt(*style.CustomNumFmt)
	}

	switch {
	case style.NumFmt >= 14 && style.NumFmt <= 17:
		return datatable.TypeDate, true
	case style.NumFmt >= 18 && style.NumFmt <= 21, style.NumFmt >= 45 && style.NumFmt <= 47:
		return datatable.TypeTimeOfDay, true
	case style.NumFmt == 22:
		return datatable.TypeDateTime, true
	}
	return 0, false
}

// classifyNumFmt inspects a custom number format code, ignoring quoted text
// and bracketed sections such as colors and locales
func classifyNumFmt(code string) (datatable.ColumnType, bool) {
	var hasDate, hasTime bool
	inQuote, inBracket := false, false

	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'y' || r == 'd':
			hasDate = true
		case r == 'h' || r == 's':
			hasTime = true
		}
	}

	switch {
	case hasDate && hasTime:
		return datatable.TypeDateTime, true
	case hasDate:
		return datatable.TypeDate, true
	case hasTime:
		return datatable.TypeTimeOfDay, true
	}
	return 0, false
}

// sheetValue converts a raw cell string for a column. Date serials become
// wall-clock times in loc.
func sheetValue(typ datatable.ColumnType, raw string, date1904 bool, loc *time.Location) interface{} {
	if raw == "" {
		return nil
	}

	switch typ {
	case datatable.TypeBoolean:
		if b, err := cast.ToBoolE(raw); err == nil {
			return b
		}
	case datatable.TypeNumber:
		if n, err := cast.ToFloat64E(raw); err == nil {
			return n
		}
	case datatable.TypeDate, datatable.TypeDateTime, datatable.TypeTimeOfDay:
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return raw
		}
		if typ == datatable.TypeTimeOfDay {
			return datatable.TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
	}
	return raw
}
