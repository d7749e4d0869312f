// AngelaMos | 2026
// dto.go

package topic

import (
	"time"
)

type CreateTopicRequest struct {
	Name                string   `json:"name"        validate:"required,min=1,max=100"`
	Description         string   `json:"description" validate:"max=1000"`
	Image               *string  `json:"image,omitempty" validate:"omitempty,max=512"`
	AllowedContentTypes []string `json:"allowedContentTypes" validate:"dive,uuid"`
}

type UpdateTopicRequest struct {
	Name                *string  `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Description         *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	AllowedContentTypes []string `json:"allowedContentTypes,omitempty" validate:"omitempty,dive,uuid"`
}

type UpdateImageRequest struct {
	Image string `json:"image" validate:"required,max=512"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,dive,uuid"`
}

type TopicResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Image               *string   `json:"image"`
	AllowedContentTypes []string  `json:"allowedContentTypes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func ToTopicResponse(t *Topic) TopicResponse {
	return TopicResponse{
		ID:                  t.ID,
		Name:                t.Name,
		Description:         t.Description,
		Image:               t.Image,
		AllowedContentTypes: t.AllowedContentTypes,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func ToTopicResponseList(topics []Topic) []TopicResponse {
	responses := make([]TopicResponse, 0, len(topics))
	for _, t := range topics {
		responses = append(responses, ToTopicResponse(&t))
	}
	return responses
}
