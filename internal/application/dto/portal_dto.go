package dto

import "time"

// PortalLoginResponse salida de POST /portal/login.
type PortalLoginResponse struct {
	Tokens TokensResponse `json:"tokens"`
	Client ClientResponse `json:"client"`
}

// PortalMeResponse salida de GET /portal/me.
type PortalMeResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// ClientResponse cliente del portal (sin password).
type ClientResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// CreateClientRequest alta de cliente por staff.
type CreateClientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateProjectUpdateRequest avance publicado para un cliente de la empresa.
type CreateProjectUpdateRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid"`
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	Status   string `json:"status" validate:"omitempty,oneof='In Progress' Review Completed"`
}

// ProjectUpdateResponse avance de proyecto.
type ProjectUpdateResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
