package datatable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefaultTimezone resets the process default after a test changes it
func restoreDefaultTimezone(t *testing.T) {
	prev := defaultLocation()
	t.Cleanup(func() { SetDefaultTimezone(prev) })
}

func TestDefaultTimezone(t *testing.T) {
	restoreDefaultTimezone(t)

	assert.Equal(t, "UTC", DefaultTimezone())
	assert.Equal(t, "UTC", New().Timezone())

	assert.True(t, SetDefaultTimezone("America/Los_Angeles"))
	assert.Equal(t, "America/Los_Angeles", DefaultTimezone())
	assert.Equal(t, "America/Los_Angeles", New().Timezone())

	for _, bad := range []interface{}{5, "", "Not/AZone", nil, []string{"UTC"}, (*time.Location)(nil)} {
		assert.False(t, SetDefaultTimezone(bad), "%#v", bad)
	}
	assert.Equal(t, "America/Los_Angeles", DefaultTimezone())
}

func TestNewWithTimezone(t *testing.T) {
	restoreDefaultTimezone(t)
	require.True(t, SetDefaultTimezone("America/Los_Angeles"))

	assert.Equal(t, "America/New_York", NewWithTimezone("America/New_York").Timezone())
	assert.Equal(t, "UTC", NewWithTimezone(time.UTC).Timezone())

	for _, bad := range []interface{}{5, 3.5, true, "", "tacos", map[string]string{}} {
		assert.Equal(t, "America/Los_Angeles", NewWithTimezone(bad).Timezone(), "%#v", bad)
	}
}

func TestSetTimezone(t *testing.T) {
	dt := NewWithTimezone("UTC")

	assert.True(t, dt.SetTimezone("Europe/Berlin"))
	assert.Equal(t, "Europe/Berlin", dt.Timezone())

	assert.False(t, dt.SetTimezone([]int{}))
	assert.False(t, dt.SetTimezone(nil))
	assert.False(t, dt.SetTimezone("Europe/Atlantis"))
	assert.Equal(t, "Europe/Berlin", dt.Timezone())

	tokyo := time.FixedZone("JST", 9*3600)
	assert.True(t, dt.SetTimezone(tokyo))
	assert.Equal(t, tokyo, dt.Location())
}

func TestSetTimezone_AffectsLaterRowsOnly(t *testing.T) {
	dt := NewWithTimezone("UTC")
	require.NoError(t, dt.AddColumn("datetime"))

	at := time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, dt.AddRow([]interface{}{at}))

	require.True(t, dt.SetTimezone("Asia/Tokyo"))
	require.NoError(t, dt.AddRow([]interface{}{at}))

	rows := dt.Rows()
	first, _ := rows[0].ColumnValue(0)
	second, _ := rows[1].ColumnValue(0)
	assert.Equal(t, "Date(2020,0,1,12,0,0)", first)
	assert.Equal(t, "Date(2020,0,1,21,0,0)", second)
}
