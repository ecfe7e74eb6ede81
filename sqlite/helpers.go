package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 parses a timestamp column stored in RFC3339 form. fieldName
// identifies the column in the error so scan failures point at the schema.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination adds LIMIT and OFFSET clauses for positive filter
// values. Zero means unpaginated, so a default ProductFilter returns
// every row.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
