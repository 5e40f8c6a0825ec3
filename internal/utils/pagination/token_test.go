package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRateToken(t *testing.T) {
	effectiveDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	rateID := "rate-123"

	token := EncodeRateToken(effectiveDate, createdAt, rateID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedEffective, decodedCreated, decodedID, err := DecodeRateToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, effectiveDate, decodedEffective, "Effective date should match after decode")
	assert.Equal(t, createdAt, decodedCreated, "Created at time should match after decode")
	assert.Equal(t, rateID, decodedID, "Rate id should match after decode")

	// Zero time values round-trip too
	zeroTime := time.Time{}
	zeroToken := EncodeRateToken(zeroTime, zeroTime, "")
	decodedZeroEffective, decodedZeroCreated, decodedZeroID, err := DecodeRateToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroEffective)
	assert.Equal(t, zeroTime, decodedZeroCreated)
	assert.Empty(t, decodedZeroID)
}

func TestDecodeRateTokenError(t *testing.T) {
	// Invalid base64
	_, _, _, err := DecodeRateToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separators
	_, _, _, err = DecodeRateToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Invalid date in the first field
	// Base64 of "notadate|2023-05-15T14:30:45.123456789Z|rate-1"
	invalidDateToken := "bm90YWRhdGV8MjAyMy0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODlafHJhdGUtMQ=="
	_, _, _, err = DecodeRateToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "effective date parse", "Error should mention date parsing issue")
}
