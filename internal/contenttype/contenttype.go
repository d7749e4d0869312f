// AngelaMos | 2026
// contenttype.go

package contenttype

import (
	"time"
)

type ContentType struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Icon      *string   `db:"icon"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type CreateRequest struct {
	Name string  `json:"name" validate:"required,min=1,max=100"`
	Icon *string `json:"icon,omitempty" validate:"omitempty,max=512"`
}

type UpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Icon *string `json:"icon,omitempty" validate:"omitempty,max=512"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,dive,uuid"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      *string   `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToResponse(ct *ContentType) Response {
	return Response{
		ID:        ct.ID,
		Name:      ct.Name,
		Icon:      ct.Icon,
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}
}

func ToResponseList(types []ContentType) []Response {
	responses := make([]Response, 0, len(types))
	for _, ct := range types {
		responses = append(responses, ToResponse(&ct))
	}
	return responses
}
