package source

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newSalesWorkbook builds a sheet with one column of every inferable type
func newSalesWorkbook(t *testing.T) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	sheet := "Sheet1"
	rows := [][]interface{}{
		{"Day", "Sales", "Region", "Open", "At", "Clock"},
		{
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			10.5,
			"north",
			true,
			time.Date(2024, time.January, 1, 9, 15, 0, 0, time.UTC),
			45292.25,
		},
		{time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), 7, "south", false},
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	clock, err := f.NewStyle(&excelize.Style{NumFmt: 21})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "F2", "F2", clock))

	return f
}

const salesSheetWire = `{
	"cols": [
		{"id": "Day", "label": "Day", "type": "date"},
		{"id": "Sales", "label": "Sales", "type": "number"},
		{"id": "Region", "label": "Region", "type": "string"},
		{"id": "Open", "label": "Open", "type": "boolean"},
		{"id": "At", "label": "At", "type": "datetime"},
		{"id": "Clock", "label": "Clock", "type": "timeofday"}
	],
	"rows": [
		{"c": [
			{"v": "Date(2024,0,1,0,0,0)"}, {"v": 10.5}, {"v": "north"},
			{"v": true}, {"v": "Date(2024,0,1,9,15,0)"}, {"v": [6, 0, 0]}
		]},
		{"c": [
			{"v": "Date(2024,0,2,0,0,0)"}, {"v": 7}, {"v": "south"},
			{"v": false}, {"v": null}, {"v": null}
		]}
	]
}`

func TestFromWorkbook(t *testing.T) {
	f := newSalesWorkbook(t)

	dt, err := FromWorkbook(f, Options{Timezone: "UTC"})
	require.NoError(t, err)

	got, err := dt.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, salesSheetWire, got)
}

func TestReadXLSX_FileAndStream(t *testing.T) {
	f := newSalesWorkbook(t)

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))

	dt, err := ReadXLSX(path, Options{Timezone: "UTC"})
	require.NoError(t, err)
	got, err := dt.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, salesSheetWire, got)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	dt, err = ReadXLSXFrom(bytes.NewReader(buf.Bytes()), Options{Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, 2, dt.RowCount())

	_, err = ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), Options{})
	assert.Error(t, err)
}

func TestFromWorkbook_NoHeaderAndOverrides(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"2024-01-01", 1}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"2024-01-02", 2}))

	dt, err := FromWorkbook(f, Options{NoHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []datatable.ColumnType{datatable.TypeString, datatable.TypeNumber}, dt.ColumnTypes())
	assert.Equal(t, []string{"", ""}, dt.ColumnLabels())
	assert.Equal(t, 2, dt.RowCount())

	require.NoError(t, f.InsertRows("Sheet1", 1, 1))
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Day", "Count"}))

	dt, err = FromWorkbook(f, Options{Types: map[string]datatable.ColumnType{"Day": datatable.TypeDate}})
	require.NoError(t, err)

	v, err := dt.Rows()[1].ColumnValue(0)
	require.NoError(t, err)
	assert.Equal(t, "Date(2024,0,2,0,0,0)", v)
}

func TestFromWorkbook_Errors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := FromWorkbook(f, Options{Sheet: "Missing"})
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = FromWorkbook(f, Options{})
	assert.ErrorIs(t, err, ErrEmptySource)

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Count"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"many"}))

	_, err = FromWorkbook(f, Options{})
	assert.ErrorIs(t, err, datatable.ErrInvalidCellValue)
	assert.Contains(t, err.Error(), "row 3")
}

func TestClassifyNumFmt(t *testing.T) {
	tests := []struct {
		code string
		want datatable.ColumnType
		ok   bool
	}{
		{"yyyy-mm-dd", datatable.TypeDate, true},
		{"d/m/yyyy h:mm", datatable.TypeDateTime, true},
		{"hh:mm:ss", datatable.TypeTimeOfDay, true},
		{"[Red]#,##0.00", 0, false},
		{`0.00 "days"`, 0, false},
		{"#,##0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := classifyNumFmt(tt.code)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
