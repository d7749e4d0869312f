// AngelaMos | 2026
// entity.go

package category

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Permission grants a role read/write access within a category.
type Permission struct {
	Role     string `json:"role"`
	CanRead  bool   `json:"canRead"`
	CanWrite bool   `json:"canWrite"`
}

// Permissions is stored as a JSONB column.
type Permissions []Permission

func (p Permissions) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal permissions: %w", err)
	}
	return string(b), nil
}

func (p *Permissions) Scan(src any) error {
	if src == nil {
		*p = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan permissions: unsupported type %T", src)
	}

	return json.Unmarshal(data, p)
}

type Category struct {
	ID          string      `db:"id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	Image       *string     `db:"image"`
	Permissions Permissions `db:"permissions"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}
