package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(450), ToCents(4.5))
	assert.Equal(t, int64(399), ToCents(3.99))
	assert.Equal(t, int64(0), ToCents(0))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "4.50", FormatCents(450))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "12.00", FormatCents(1200))
	assert.Equal(t, "-1.25", FormatCents(-125))
}
