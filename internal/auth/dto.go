// AngelaMos | 2026
// dto.go

package auth

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role"     validate:"required,oneof=creator reader"`
	Language string `json:"language" validate:"omitempty,bcp47_language_tag"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type RegisterData struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type LoginData struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	Language string `json:"language"`
}
