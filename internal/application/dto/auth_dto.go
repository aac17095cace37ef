package dto

import "time"

// RegisterRequest alta de empresa + usuario owner.
type RegisterRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
}

// RegisterResponse salida de POST /auth/register.
type RegisterResponse struct {
	Message string         `json:"message"`
	Company CompanySummary `json:"company"`
	User    UserResponse   `json:"user"`
}

// LoginRequest credenciales (staff o portal).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokensResponse par access/refresh.
type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse salida de POST /auth/login.
type LoginResponse struct {
	Message string         `json:"message"`
	Tokens  TokensResponse `json:"tokens"`
	User    UserResponse   `json:"user"`
}

// RefreshRequest refresh token a rotar o revocar.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse nuevo par de tokens.
type RefreshResponse struct {
	Tokens TokensResponse `json:"tokens"`
}

// MeResponse salida de GET /auth/me.
type MeResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// UserResponse salida de un usuario staff (sin password).
type UserResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserRequest alta de staff dentro de la empresa del token.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Role      string `json:"role" validate:"required"`
	// Activate crea el usuario directamente activo; por defecto queda pending.
	Activate bool `json:"activate"`
}

// UpdateUserStatusRequest cambio de estado de un staff.
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active suspended deactivated"`
}
