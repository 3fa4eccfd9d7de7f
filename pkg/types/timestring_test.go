package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "morning", input: "09:00"},
		{name: "evening", input: "18:30"},
		{name: "end of day", input: "24:00"},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "seconds", input: "09:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	next, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), next)

	end, err := TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = TimeString("23:30").AddMinutes(60)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2026, 10, 21, 0, 0, 0, 0, loc)

	start, err := TimeString("09:15").OnDate(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 21, 9, 15, 0, 0, loc), start)

	midnight, err := TimeString("24:00").OnDate(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 22, 0, 0, 0, 0, loc), midnight)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("18:00:00")))
	assert.Equal(t, TimeString("18:00"), ts)

	require.NoError(t, ts.Scan("07:45:00"))
	assert.Equal(t, TimeString("07:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}
