package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDates(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	hour := time.Hour

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		field string
	}{
		{"valid", now.Add(hour), now.Add(2 * hour), ""},
		{"starts now", now, now.Add(hour), ""},
		{"missing start", time.Time{}, now.Add(hour), "start"},
		{"missing end", now.Add(hour), time.Time{}, "end"},
		{"start in past", now.Add(-hour), now.Add(hour), "start"},
		{"end in past", now.Add(-2 * hour), now.Add(-hour), "start"},
		{"end before start", now.Add(2 * hour), now.Add(hour), "end"},
		{"end equals start", now.Add(hour), now.Add(hour), "end"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDates(tc.start, tc.end, now)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var dateErr *DateError
			require.ErrorAs(t, err, &dateErr)
			assert.Equal(t, tc.field, dateErr.Field)
			assert.NotEmpty(t, dateErr.Reason)
		})
	}
}
