package entity

import "time"

// Client principal del portal. Espacio de identidad separado de User; email único global.
type Client struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active, deactivated
	CreatedAt    time.Time
}

// IsActive informa si el cliente puede operar en el portal.
func (c *Client) IsActive() bool { return c.Status == StatusActive }

// Estados de ProjectUpdate.
const (
	UpdateInProgress = "In Progress"
	UpdateReview     = "Review"
	UpdateCompleted  = "Completed"
)

// ProjectUpdate avance de proyecto publicado por staff para un cliente.
type ProjectUpdate struct {
	ID        string
	CompanyID string
	ClientID  string
	Title     string
	Content   string
	Status    string
	CreatedAt time.Time
}
