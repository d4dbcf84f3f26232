package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "08:00"},
		{in: "17:00"},
		{in: "23:59"},
		{in: "8:00", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "", wantErr: true},
		{in: "noon!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("08:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), got)

	got, err = TimeString("23:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:15"), got)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	date := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("10:00").On(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 9, 13, 0, 0, 0, time.UTC), got.UTC())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:00:00"))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan([]byte("10:00")))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("11:00"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("09:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}
