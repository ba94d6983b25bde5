package tabledoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const salesYAML = `
timezone: America/Los_Angeles
columns:
  - [date, Day]
  - {type: number, label: Sales, id: sales}
  - [string, Note, tooltip]
rows:
  - ["2024-01-01", 10, "quiet"]
  - ["2024-01-02", {v: 1234.5, f: big}, null]
formats:
  - {column: 1, type: NumberFormat, options: {prefix: $}}
`

const salesWire = `{
	"cols": [
		{"id": "col0", "label": "Day", "type": "date"},
		{"id": "sales", "label": "Sales", "type": "number"},
		{"id": "col2", "label": "Note", "type": "string", "role": "tooltip"}
	],
	"rows": [
		{"c": [{"v": "Date(2024,0,1,0,0,0)"}, {"v": 10, "f": "$10.00"}, {"v": "quiet"}]},
		{"c": [{"v": "Date(2024,0,2,0,0,0)"}, {"v": 1234.5, "f": "$1,234.50"}, {"v": null}]}
	]
}`

func TestParseAndBuild_YAML(t *testing.T) {
	doc, err := Parse([]byte(salesYAML), YAML)
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", doc.Timezone)
	assert.Len(t, doc.Columns, 3)
	assert.Len(t, doc.Rows, 2)
	require.Len(t, doc.Formats, 1)
	assert.Equal(t, "NumberFormat", doc.Formats[0].Type)

	dt, err := Build(doc, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", dt.Timezone())

	got, err := dt.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, salesWire, got)
}

func TestParseAndBuild_JSON(t *testing.T) {
	src := `{
		"columns": [["date", "Day"], {"type": "number", "label": "Sales", "id": "sales"}, ["string", "Note", "tooltip"]],
		"rows": [["2024-01-01", 10, "quiet"], ["2024-01-02", {"v": 1234.5, "f": "big"}, null]],
		"formats": [{"column": 1, "type": "NumberFormat", "options": {"prefix": "$"}}]
	}`

	doc, err := Parse([]byte(src), JSON)
	require.NoError(t, err)

	dt, err := Build(doc, "UTC", nil)
	require.NoError(t, err)
	assert.Equal(t, "UTC", dt.Timezone())

	got, err := dt.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, salesWire, got)
}

func TestParse_UnknownFields(t *testing.T) {
	_, err := Parse([]byte("columns: []\nrows: []\ncolours: red\n"), YAML)
	assert.Error(t, err)

	_, err = Parse([]byte(`{"columns": [], "colours": "red"}`), JSON)
	assert.Error(t, err)

	_, err = Parse([]byte("columns: []"), Encoding("toml"))
	assert.Error(t, err)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"bad column type", "columns: [[falcons, X]]\n", datatable.ErrInvalidColumnType},
		{"bad row", "columns: [number]\nrows: [5]\n", datatable.ErrInvalidRowDefinition},
		{"bad cell", "columns: [number]\nrows: [[abc]]\n", datatable.ErrInvalidCellValue},
		{"cell count", "columns: [number]\nrows: [[1, 2]]\n", datatable.ErrInvalidCellCount},
		{"unknown formatter", "columns: [number]\nformats: [{column: 0, type: PieFormat}]\n", datatable.ErrInvalidConfigValue},
		{"format option", "columns: [number]\nformats: [{column: 0, type: NumberFormat, options: {colour: red}}]\n", datatable.ErrInvalidConfigProperty},
		{"format column", "columns: [number]\nformats: [{column: 3, type: NumberFormat}]\n", datatable.ErrInvalidColumnIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.doc), YAML)
			require.NoError(t, err)

			_, err = Build(doc, "", nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuild_IgnoredTimezoneIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	doc, err := Parse([]byte("timezone: 5\ncolumns: [datetime]\n"), YAML)
	require.NoError(t, err)

	dt, err := Build(doc, "Europe/Berlin", zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", dt.Timezone())

	require.Equal(t, 1, logs.FilterMessage("document timezone ignored").Len())
}

const mixedYAML = `
timezone: Asia/Tokyo
columns:
  - {type: datetime, label: At, id: at, pattern: "yyyy-MM-dd"}
  - [timeofday, Clock]
  - {type: boolean, label: Ok, p: {width: 3}}
  - [number, Score, "", "#.#"]
rows:
  - ["2024-03-01 09:30:00", "08:30:00", true, {v: 7, f: seven, p: {style: bold}}]
  - [null, "23:59:59.500", false, 2.5]
formats:
  - {column: 0, type: DateFormat, options: {formatType: long}}
`

func TestFromTable_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(mixedYAML), YAML)
	require.NoError(t, err)
	original, err := Build(doc, "", nil)
	require.NoError(t, err)

	want, err := original.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, want, `"Date(2024,2,1,9,30,0)"`)
	assert.Contains(t, want, `"March 1, 2024"`)

	for _, enc := range []Encoding{YAML, JSON} {
		t.Run(string(enc), func(t *testing.T) {
			data, err := Encode(FromTable(original), enc)
			require.NoError(t, err)

			parsed, err := Parse(data, enc)
			require.NoError(t, err)
			rebuilt, err := Build(parsed, "", nil)
			require.NoError(t, err)
			assert.Equal(t, "Asia/Tokyo", rebuilt.Timezone())

			got, err := rebuilt.ToJSON()
			require.NoError(t, err)
			assert.JSONEq(t, want, got)
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sales.yaml")
	require.NoError(t, os.WriteFile(src, []byte(salesYAML), 0644))

	doc, err := ReadFile(src)
	require.NoError(t, err)

	dst := filepath.Join(dir, "sales.json")
	require.NoError(t, WriteFile(dst, doc))

	again, err := ReadFile(dst)
	require.NoError(t, err)
	assert.Len(t, again.Rows, 2)

	_, err = ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEncodingHelpers(t *testing.T) {
	assert.Equal(t, JSON, EncodingFor("a/b.JSON"))
	assert.Equal(t, YAML, EncodingFor("a/b.yml"))
	assert.Equal(t, YAML, EncodingFor("noext"))

	enc, err := ParseEncoding("YML")
	require.NoError(t, err)
	assert.Equal(t, YAML, enc)

	_, err = ParseEncoding("toml")
	assert.Error(t, err)
}
