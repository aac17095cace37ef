package entity

import "time"

// Estados de Company, User (staff) y Client.
const (
	StatusPending     = "pending"
	StatusActive      = "active"
	StatusSuspended   = "suspended"
	StatusDeactivated = "deactivated"
)

// Company representa una organización/tenant del sistema.
// Slug es único global e inmutable después de creado.
type Company struct {
	ID        string
	Name      string
	Slug      string
	Status    string // pending, active, suspended, deactivated
	Modules   Modules
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos SaaS disponibles por empresa.
const (
	ModuleClientPortal    = "client_portal"
	ModuleBookings        = "bookings"
	ModuleInvoicing       = "invoicing"
	ModuleInventory       = "inventory"
	ModuleTeamOnboarding  = "team_onboarding"
	ModuleFieldReports    = "field_reports"
	ModuleSurveys         = "surveys"
	ModuleSocialScheduler = "social_scheduler"
)

// Modules banderas de activación de módulos de la empresa.
type Modules struct {
	ClientPortal    bool `json:"client_portal"`
	Bookings        bool `json:"bookings"`
	Invoicing       bool `json:"invoicing"`
	Inventory       bool `json:"inventory"`
	TeamOnboarding  bool `json:"team_onboarding"`
	FieldReports    bool `json:"field_reports"`
	Surveys         bool `json:"surveys"`
	SocialScheduler bool `json:"social_scheduler"`
}

// DefaultModules módulos activos al registrar una empresa.
func DefaultModules() Modules {
	return Modules{ClientPortal: true, Bookings: true, Invoicing: true}
}

// Enabled informa si el módulo indicado está activo. Nombre desconocido = false.
func (m Modules) Enabled(name string) bool {
	switch name {
	case ModuleClientPortal:
		return m.ClientPortal
	case ModuleBookings:
		return m.Bookings
	case ModuleInvoicing:
		return m.Invoicing
	case ModuleInventory:
		return m.Inventory
	case ModuleTeamOnboarding:
		return m.TeamOnboarding
	case ModuleFieldReports:
		return m.FieldReports
	case ModuleSurveys:
		return m.Surveys
	case ModuleSocialScheduler:
		return m.SocialScheduler
	}
	return false
}

// Set activa o desactiva un módulo. Devuelve false si el nombre no existe.
func (m *Modules) Set(name string, on bool) bool {
	switch name {
	case ModuleClientPortal:
		m.ClientPortal = on
	case ModuleBookings:
		m.Bookings = on
	case ModuleInvoicing:
		m.Invoicing = on
	case ModuleInventory:
		m.Inventory = on
	case ModuleTeamOnboarding:
		m.TeamOnboarding = on
	case ModuleFieldReports:
		m.FieldReports = on
	case ModuleSurveys:
		m.Surveys = on
	case ModuleSocialScheduler:
		m.SocialScheduler = on
	default:
		return false
	}
	return true
}
