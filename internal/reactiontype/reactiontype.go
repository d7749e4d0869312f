// AngelaMos | 2026
// reactiontype.go

package reactiontype

import (
	"time"
)

type ReactionType struct {
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

func ToResponse(rt *ReactionType) Response {
	return Response{
		ID:        rt.ID,
		Name:      rt.Name,
		Icon:      rt.Icon,
		CreatedAt: rt.CreatedAt,
		UpdatedAt: rt.UpdatedAt,
	}
}

func ToResponseList(types []ReactionType) []Response {
	responses := make([]Response, 0, len(types))
	for _, rt := range types {
		responses = append(responses, ToResponse(&rt))
	}
	return responses
}
