package authz

// Tipos de principal.
const (
	KindStaff  = "staff"
	KindClient = "client"
)

// Context resultado inmutable de un request autorizado. Es la única fuente
// de company_id para filtros de lectura y asignaciones de escritura.
type Context struct {
	principalID string
	kind        string
	companyID   string
	role        string
}

// NewContext construye el contexto autorizado. Solo el gate debería llamarlo.
func NewContext(principalID, kind, companyID, role string) Context {
	return Context{principalID: principalID, kind: kind, companyID: companyID, role: role}
}

func (c Context) PrincipalID() string { return c.principalID }
func (c Context) Kind() string        { return c.kind }
func (c Context) CompanyID() string   { return c.companyID }

// Role rol del staff; vacío para clientes.
func (c Context) Role() string { return c.role }

// IsStaff informa si el principal es staff.
func (c Context) IsStaff() bool { return c.kind == KindStaff }

// IsClient informa si el principal es un cliente del portal.
func (c Context) IsClient() bool { return c.kind == KindClient }

// Valid informa si el contexto fue poblado por el gate.
func (c Context) Valid() bool {
	return c.principalID != "" && c.companyID != "" && (c.kind == KindStaff || c.kind == KindClient)
}
