package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/earsiv-client/internal/model"
	"github.com/rezonia/earsiv-client/internal/validation"
)

func TestNotEmptyString(t *testing.T) {
	assert.NoError(t, validation.NotEmptyString("x", "name"))

	tests := []struct {
		name  string
		value any
	}{
		{"empty string", ""},
		{"nil", nil},
		{"number", 42},
		{"bool", true},
		{"slice", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.NotEmptyString(tt.value, "name")
			require.Error(t, err)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "name", verr.Field)
		})
	}
}

func TestGreaterThan(t *testing.T) {
	assert.NoError(t, validation.GreaterThan(0.01, 0, "price"))
	assert.NoError(t, validation.GreaterThan(5, 0, "price"))
	assert.NoError(t, validation.GreaterThan(int64(3), 2, "price"))

	tests := []struct {
		name  string
		value any
	}{
		{"zero", 0},
		{"equal to threshold", 0.0},
		{"negative", -1.5},
		{"string number", "5"},
		{"nil", nil},
		{"bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.GreaterThan(tt.value, 0, "products[0].price")
			require.Error(t, err)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "products[0].price", verr.Field)
			assert.Contains(t, err.Error(), "products[0].price")
		})
	}
}
