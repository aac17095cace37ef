package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner        = "owner"
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleStaff        = "staff"
	RoleFieldWorker  = "field_worker"
	RoleReceptionist = "receptionist"
	RoleAccountant   = "accountant"
	RoleViewer       = "viewer"
)

// ValidRole informa si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager, RoleStaff, RoleFieldWorker,
		RoleReceptionist, RoleAccountant, RoleViewer:
		return true
	}
	return false
}

// ValidUserStatus informa si s es un estado válido de staff.
func ValidUserStatus(s string) bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended, StatusDeactivated:
		return true
	}
	return false
}

// User representa un usuario staff (pertenece a una Company). Email es único global.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string
	Status       string // pending, active, suspended, deactivated
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ActivatedAt  *time.Time
}

// IsActive informa si el usuario puede operar.
func (u *User) IsActive() bool { return u.Status == StatusActive }
