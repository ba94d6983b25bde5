package tabledoc

import (
	"fmt"
	"sort"
	"time"

	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/conduit-lang/chartdata/pkg/datatable/formats"
	"go.uber.org/zap"
)

// Build creates a DataTable from doc. fallbackTZ is used when the document
// names no timezone; an empty fallback keeps the process default.
func Build(doc *Document, fallbackTZ string, logger *zap.Logger) (*datatable.DataTable, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dt := datatable.New()
	dt.SetLogger(logger)

	if fallbackTZ != "" {
		dt.SetTimezone(fallbackTZ)
	}
	if doc.Timezone != nil && !dt.SetTimezone(doc.Timezone) {
		logger.Warn("document timezone ignored",
			zap.Any("timezone", doc.Timezone),
			zap.String("using", dt.Timezone()))
	}

	if err := dt.AddColumns(doc.Columns...); err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	if err := dt.AddRows(doc.Rows...); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i, spec := range doc.Formats {
		f, err := formats.New(spec.Type, spec.Options)
		if err != nil {
			return nil, fmt.Errorf("formats[%d]: %w", i, err)
		}
		if err := dt.FormatColumn(spec.Column, f); err != nil {
			return nil, fmt.Errorf("formats[%d]: %w", i, err)
		}
	}

	logger.Debug("built table",
		zap.Int("columns", dt.ColumnCount()),
		zap.Int("rows", dt.RowCount()),
		zap.String("timezone", dt.Timezone()))

	return dt, nil
}

// FromTable describes dt as a document that builds an equivalent table
func FromTable(dt *datatable.DataTable) *Document {
	doc := &Document{
		Timezone: dt.Timezone(),
		Columns:  make([]interface{}, 0, dt.ColumnCount()),
		Rows:     make([]interface{}, 0, dt.RowCount()),
	}

	for _, c := range dt.Columns() {
		col := map[string]interface{}{
			"type": c.Type().String(),
			"id":   c.ID(),
		}
		if c.Label() != "" {
			col["label"] = c.Label()
		}
		if c.Role() != "" {
			col["role"] = c.Role()
		}
		if c.Pattern() != "" {
			col["pattern"] = c.Pattern()
		}
		if p := c.Properties(); p != nil {
			col["p"] = p
		}
		doc.Columns = append(doc.Columns, col)
	}

	for _, r := range dt.Rows() {
		cells := r.Cells()
		values := make([]interface{}, len(cells))
		for i, c := range cells {
			values[i] = documentCell(c)
		}
		doc.Rows = append(doc.Rows, values)
	}

	for i, f := range dt.FormattedColumns() {
		doc.Formats = append(doc.Formats, FormatSpec{Column: i, Type: f.Type(), Options: f.Options()})
	}
	sort.Slice(doc.Formats, func(i, j int) bool { return doc.Formats[i].Column < doc.Formats[j].Column })

	return doc
}

func documentCell(c datatable.Cell) interface{} {
	v := documentValue(c.Raw())
	if c.Formatted() == "" && c.Properties() == nil {
		return v
	}

	m := map[string]interface{}{"v": v}
	if c.Formatted() != "" {
		m["f"] = c.Formatted()
	}
	if p := c.Properties(); p != nil {
		m["p"] = p
	}
	return m
}

// documentValue converts raw cell values to forms both encodings round-trip
func documentValue(raw interface{}) interface{} {
	switch v := raw.(type) {
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case datatable.TimeOfDay:
		return v.String()
	default:
		return v
	}
}
