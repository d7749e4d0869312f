// AngelaMos | 2026
// entity.go

package topic

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ContentTypeSet is the list of content type IDs a topic accepts, stored as
// a JSONB column. Empty means unrestricted.
type ContentTypeSet []string

func (s ContentTypeSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal content type set: %w", err)
	}
	return string(b), nil
}

func (s *ContentTypeSet) Scan(src any) error {
	if src == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan content type set: unsupported type %T", src)
	}

	return json.Unmarshal(data, s)
}

func (s ContentTypeSet) Allows(contentTypeID string) bool {
	if len(s) == 0 {
		return true
	}
	for _, id := range s {
		if id == contentTypeID {
			return true
		}
	}
	return false
}

type Topic struct {
	ID                  string         `db:"id"`
	Name                string         `db:"name"`
	Description         string         `db:"description"`
	Image               *string        `db:"image"`
	AllowedContentTypes ContentTypeSet `db:"allowed_content_types"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}
