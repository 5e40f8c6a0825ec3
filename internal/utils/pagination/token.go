package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeRateToken creates a base64 encoded keyset token from the sort key of
// an exchange rate row (effective date, creation time, record id). This keeps
// pagination stable while new rates are being inserted.
func EncodeRateToken(effectiveDate, createdAt time.Time, rateID string) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", effectiveDate.Format(timeFormat), createdAt.Format(timeFormat), rateID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeRateToken parses a keyset token back into its sort key components.
func DecodeRateToken(token string) (time.Time, time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	effectiveDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (effective date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return effectiveDate, createdAt, parts[2], nil
}
