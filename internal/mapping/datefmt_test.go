package mapping_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/earsiv-client/internal/mapping"
	"github.com/rezonia/earsiv-client/internal/model"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"time value", time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC), "14/02/2026"},
		{"already wire formatted", "14/02/2026", "14/02/2026"},
		{"iso date", "2026-02-14", "14/02/2026"},
		{"rfc3339", "2026-02-14T10:30:00Z", "14/02/2026"},
		{"datetime", "2026-02-14 10:30:00", "14/02/2026"},
		{"dashed day first", "14-02-2026", "14/02/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mapping.FormatDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDateDefaultsToToday(t *testing.T) {
	got, err := mapping.FormatDate(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("02/01/2006"), got)
}

func TestFormatDateRejectsGarbage(t *testing.T) {
	for _, input := range []any{"yarın", 42, true} {
		_, err := mapping.FormatDate(input)
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr, "%#v", input)
	}
}

func TestFormatClock(t *testing.T) {
	got, err := mapping.FormatClock(time.Date(2026, 2, 14, 9, 5, 7, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "09:05:07", got)

	got, err = mapping.FormatClock("10:30:00")
	require.NoError(t, err)
	assert.Equal(t, "10:30:00", got)
}
