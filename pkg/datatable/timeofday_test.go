package datatable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
	}{
		{"08:01", TimeOfDay{Hour: 8, Minute: 1}},
		{"08:01:05", TimeOfDay{Hour: 8, Minute: 1, Second: 5}},
		{" 23:59:59.250 ", TimeOfDay{Hour: 23, Minute: 59, Second: 59, Millisecond: 250}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "8am", "24:00", "12:61", "tacos"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidDateTimeString, bad)
	}
}

func TestNewTimeOfDay(t *testing.T) {
	tod, err := NewTimeOfDay(13, 30, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, "13:30:00.005", tod.String())
	assert.Equal(t, []int{13, 30, 0, 5}, tod.Literal())

	_, err = NewTimeOfDay(24, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidDateTimeString)

	_, err = NewTimeOfDay(0, 0, 0, 1000)
	assert.ErrorIs(t, err, ErrInvalidDateTimeString)
}

func TestTimeOfDayColumn(t *testing.T) {
	dt := NewWithTimezone("America/New_York")
	require.NoError(t, dt.AddColumn("timeofday"))

	require.NoError(t, dt.AddRows(
		[]interface{}{TimeOfDay{Hour: 8, Minute: 1, Second: 5}},
		[]interface{}{&TimeOfDay{Hour: 8, Minute: 1, Second: 5, Millisecond: 250}},
		[]interface{}{"08:01:05"},
		[]interface{}{[]int{8, 1, 5}},
		[]interface{}{[]interface{}{8.0, 1.0, 5.0, 250.0}},
		[]interface{}{time.Date(2020, time.June, 1, 12, 1, 5, 0, time.UTC)},
	))

	want := [][]int{{8, 1, 5}, {8, 1, 5, 250}, {8, 1, 5}, {8, 1, 5}, {8, 1, 5, 250}, {8, 1, 5}}
	for i, row := range dt.Rows() {
		v, err := row.ColumnValue(0)
		require.NoError(t, err)
		assert.Equal(t, want[i], v, "row %d", i)
	}

	for _, bad := range []interface{}{[]int{25, 0, 0}, []int{1, 2}, []interface{}{"8", 1, 5}, (*TimeOfDay)(nil)} {
		err := dt.AddRow([]interface{}{bad})
		assert.ErrorIs(t, err, ErrInvalidDateTimeString, "%#v", bad)
	}
}
