package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// TagList stores a set of lowercase tags as a comma-joined column while
// marshaling to a JSON array.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	return strings.Join(t, ","), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("unsupported tag column type %T", value)
	}
	*t = NormalizeTags(strings.Split(s, ","))
	return nil
}

// NormalizeTags trims, lowercases and drops empty entries.
func NormalizeTags(tags []string) TagList {
	out := make(TagList, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
