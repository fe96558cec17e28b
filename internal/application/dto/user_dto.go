package dto

import "time"

// RegisterRequest entrada para registro. El plan inicial es free.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=50"`
	Company  string `json:"company" validate:"max=200"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest datos de perfil editables por el propio usuario.
type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Company *string `json:"company" validate:"omitempty,max=200"`
}

// UpdatePlanRequest cambio de plan (solo admin).
type UpdatePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=free premium"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Plan      string    `json:"plan"`
	IsPremium bool      `json:"is_premium"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminUserListResponse listado de usuarios para el panel de administración.
type AdminUserListResponse struct {
	Items   []UserResponse `json:"items"`
	Total   int            `json:"total"`
	Premium int            `json:"premium"`
	Free    int            `json:"free"`
}
