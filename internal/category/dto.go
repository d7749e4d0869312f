// AngelaMos | 2026
// dto.go

package category

import (
	"time"
)

type PermissionRequest struct {
	Role     string `json:"role"     validate:"required,oneof=admin creator reader"`
	CanRead  bool   `json:"canRead"`
	CanWrite bool   `json:"canWrite"`
}

type CreateCategoryRequest struct {
	Name        string              `json:"name"        validate:"required,min=1,max=100"`
	Description string              `json:"description" validate:"max=1000"`
	Image       *string             `json:"image,omitempty" validate:"omitempty,max=512"`
	Permissions []PermissionRequest `json:"permissions" validate:"dive"`
}

type UpdateCategoryRequest struct {
	Name        *string             `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Description *string             `json:"description,omitempty" validate:"omitempty,max=1000"`
	Permissions []PermissionRequest `json:"permissions,omitempty" validate:"omitempty,dive"`
}

type UpdateImageRequest struct {
	Image string `json:"image" validate:"required,max=512"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,dive,uuid"`
}

type CategoryResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Image       *string      `json:"image"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func toPermissions(reqs []PermissionRequest) Permissions {
	perms := make(Permissions, 0, len(reqs))
	for _, p := range reqs {
		perms = append(perms, Permission{
			Role:     p.Role,
			CanRead:  p.CanRead,
			CanWrite: p.CanWrite,
		})
	}
	return perms
}

func ToCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Permissions: c.Permissions,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCategoryResponseList(categories []Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, ToCategoryResponse(&c))
	}
	return responses
}
