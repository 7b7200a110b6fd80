package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 1.30, Round(1.2987))
	assert.Equal(t, 84.75, Round(84.746))
	assert.Equal(t, 0.0, Round(0))
	assert.Equal(t, -2.50, Round(-2.499))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$84.75", FormatMoney(84.75))
	assert.Equal(t, "$10.00", FormatMoney(10))
}

func TestValidateDate(t *testing.T) {
	assert.True(t, ValidateDate("2026-03-14"))
	assert.False(t, ValidateDate("14/03/2026"))
	assert.False(t, ValidateDate(""))
}

func TestGeneratePromoCode(t *testing.T) {
	code := GeneratePromoCode(8)
	assert.Len(t, code, 8)
	assert.NotEqual(t, code, GeneratePromoCode(8))
}
