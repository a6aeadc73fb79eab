package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("asha@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("asha"))
	assert.Error(t, ValidateEmail("Asha <asha@example.com>"))
	assert.Error(t, ValidateEmail("asha@localhost"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone("+91 98765-43210"))
	assert.Equal(t, "9876543210", NormalizePhone("09876543210"))
	assert.NoError(t, ValidatePhone("9876543210"))
	assert.Error(t, ValidatePhone("98765"))
	assert.Error(t, ValidatePhone("98765abcde"))
}

func TestValidateOTP(t *testing.T) {
	assert.NoError(t, ValidateOTP("042917"))
	assert.Error(t, ValidateOTP("42917"))
	assert.Error(t, ValidateOTP("04291a"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Asha Rao", SanitizeString("  Asha\x00 Rao\x07 "))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 100, ValidateLimit(1000))
	assert.Equal(t, 5, ValidateLimit(5))
}
