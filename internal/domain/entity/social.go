package entity

import "time"

// Plataformas soportadas.
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
)

// ValidPlatform informa si p es una plataforma soportada.
func ValidPlatform(p string) bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformTwitter, PlatformLinkedIn:
		return true
	}
	return false
}

// Estados de SocialPost.
const (
	PostDraft     = "draft"
	PostScheduled = "scheduled"
	PostPosted    = "posted"
	PostFailed    = "failed"
)

// SocialPlatform cuenta conectada. AccessToken es la credencial de conexión; nunca se expone.
type SocialPlatform struct {
	ID           string
	CompanyID    string
	PlatformName string
	AccountName  string
	AccessToken  string
	IsConnected  bool
	CreatedAt    time.Time
}

// SocialPost publicación programada hacia una o varias plataformas de la misma empresa.
type SocialPost struct {
	ID           string
	CompanyID    string
	UserID       string
	Content      string
	MediaURLs    []string
	ScheduledFor time.Time
	Status       string
	PlatformIDs  []string
	CreatedAt    time.Time
}
