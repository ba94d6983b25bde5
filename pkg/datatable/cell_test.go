package datatable

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellMap(t *testing.T) {
	dt := New()
	require.NoError(t, dt.AddColumns("number", "string"))

	require.NoError(t, dt.AddRow([]interface{}{
		map[string]interface{}{"v": 5, "f": "five", "p": map[string]interface{}{"style": "bold"}},
		map[interface{}]interface{}{"v": "x"},
	}))

	row := dt.Rows()[0]
	c, err := row.Cell(0)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Value())
	assert.Equal(t, "five", c.Formatted())
	assert.Equal(t, map[string]interface{}{"style": "bold"}, c.Properties())

	c, err = row.Cell(1)
	require.NoError(t, err)
	assert.Equal(t, "x", c.Value())
	assert.Empty(t, c.Formatted())
	assert.Nil(t, c.Properties())
}

func TestCellMap_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cell interface{}
		want error
	}{
		{"empty", map[string]interface{}{}, ErrInvalidRowProperty},
		{"unknown key", map[string]interface{}{"v": 1, "x": 2}, ErrInvalidRowProperty},
		{"f not a string", map[string]interface{}{"v": 1, "f": 2}, ErrInvalidRowProperty},
		{"p not a map", map[string]interface{}{"v": 1, "p": "bold"}, ErrInvalidRowProperty},
		{"non-string keys", map[interface{}]interface{}{1: 2}, ErrInvalidRowProperty},
		{"bad value", map[string]interface{}{"v": "five"}, ErrInvalidCellValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt := New()
			require.NoError(t, dt.AddColumn("number"))

			err := dt.AddRow([]interface{}{tt.cell})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCellMap_NullValueWithDisplay(t *testing.T) {
	dt := New()
	require.NoError(t, dt.AddColumn("number"))
	require.NoError(t, dt.AddRow([]interface{}{map[string]interface{}{"v": nil, "f": "n/a"}}))

	c, err := dt.Rows()[0].Cell(0)
	require.NoError(t, err)
	assert.True(t, c.IsNull())
	assert.Equal(t, "n/a", c.Formatted())
}

func TestNewCell(t *testing.T) {
	props := map[string]interface{}{"style": "color: red"}
	in := NewCell(time.Date(2001, time.February, 3, 0, 0, 0, 0, time.UTC), "Feb 3", props)
	props["style"] = "changed"

	dt := New()
	require.NoError(t, dt.AddColumn("date"))
	require.NoError(t, dt.AddRow([]interface{}{in}))

	c, err := dt.Rows()[0].Cell(0)
	require.NoError(t, err)
	assert.Equal(t, "Date(2001,1,3,0,0,0)", c.Value())
	assert.Equal(t, time.Date(2001, time.February, 3, 0, 0, 0, 0, time.UTC), c.Raw())
	assert.Equal(t, "Feb 3", c.Formatted())
	assert.Equal(t, "color: red", c.Properties()["style"])

	err = dt.AddRow([]interface{}{NewCell("tacos", "", nil)})
	assert.ErrorIs(t, err, ErrInvalidDateTimeString)
}

func TestRow_CellIndex(t *testing.T) {
	dt := New()
	require.NoError(t, dt.AddColumn("boolean"))
	require.NoError(t, dt.AddRow([]interface{}{true}))

	row := dt.Rows()[0]
	_, err := row.Cell(1)
	assert.ErrorIs(t, err, ErrInvalidColumnIndex)

	_, err = row.ColumnValue(-1)
	assert.ErrorIs(t, err, ErrInvalidColumnIndex)

	v, err := row.ColumnValue(0)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestNumberCell_RejectsNonFinite(t *testing.T) {
	dt := New()
	require.NoError(t, dt.AddColumn("number"))

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		err := dt.AddRow([]interface{}{v})
		assert.ErrorIs(t, err, ErrInvalidCellValue, "%v", v)
	}
}

func TestDateLiteral(t *testing.T) {
	assert.Equal(t, "Date(1988,2,24,8,1,5)", DateLiteral(time.Date(1988, time.March, 24, 8, 1, 5, 0, time.UTC)))
	assert.Equal(t, "Date(2000,0,1,0,0,0)", DateLiteral(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Date(1999,11,31,23,59,59)", DateLiteral(time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC)))
}
