package dto

import "time"

// ConnectPlatformRequest conexión de una cuenta social.
type ConnectPlatformRequest struct {
	PlatformName string `json:"platform_name" validate:"required,oneof=facebook instagram twitter linkedin"`
	AccountName  string `json:"account_name" validate:"required"`
	AccessToken  string `json:"access_token" validate:"required"`
}

// PlatformResponse cuenta conectada (sin credencial).
type PlatformResponse struct {
	ID           string `json:"id"`
	PlatformName string `json:"platform_name"`
	AccountName  string `json:"account_name"`
	IsConnected  bool   `json:"is_connected"`
}

// SchedulePostRequest publicación programada.
type SchedulePostRequest struct {
	Content      string    `json:"content" validate:"required"`
	MediaURLs    []string  `json:"media_urls"`
	ScheduledFor time.Time `json:"scheduled_for" validate:"required"`
	PlatformIDs  []string  `json:"platform_ids" validate:"required,min=1"`
	Draft        bool      `json:"draft"`
}

// PostResponse publicación.
type PostResponse struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	MediaURLs    []string  `json:"media_urls,omitempty"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Status       string    `json:"status"`
	PlatformIDs  []string  `json:"platform_ids"`
	CreatedAt    time.Time `json:"created_at"`
}
