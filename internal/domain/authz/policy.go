// Package authz define los permisos, la tabla rol→permiso y el contexto autorizado
// que el gate entrega a la capa de recursos.
package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

// Permission token de capacidad protegida, p.ej. "inventory.manage".
type Permission string

// Permisos conocidos.
const (
	BookingsManage  Permission = "bookings.manage"
	InventoryManage Permission = "inventory.manage"
	InvoicingScan   Permission = "invoicing.scan"
	InvoicingManage Permission = "invoicing.manage"
	PortalView      Permission = "portal.view"
	PortalCreate    Permission = "portal.create"
	SocialManage    Permission = "social.manage"
	ReportsManage   Permission = "reports.manage"
	TeamManage      Permission = "team.manage"
	CompanyManage   Permission = "company.manage"

	// All concede todos los permisos.
	All Permission = "*"
)

// Known lista de permisos válidos (sin el comodín).
var Known = []Permission{
	BookingsManage, InventoryManage, InvoicingScan, InvoicingManage,
	PortalView, PortalCreate, SocialManage, ReportsManage, TeamManage, CompanyManage,
}

func isKnown(p Permission) bool {
	if p == All {
		return true
	}
	for _, k := range Known {
		if k == p {
			return true
		}
	}
	return false
}

// Policy tabla explícita (rol, permiso) → permitido. Lo que no está en la tabla se deniega.
type Policy struct {
	grants map[string]map[Permission]bool
}

// DefaultPolicy owner y admin tienen el comodín; el resto de roles no tiene concesiones
// hasta que se configuren.
func DefaultPolicy() *Policy {
	p := &Policy{grants: make(map[string]map[Permission]bool)}
	p.Grant(entity.RoleOwner, All)
	p.Grant(entity.RoleAdmin, All)
	return p
}

// Grant añade una concesión a la tabla.
func (p *Policy) Grant(role string, perm Permission) {
	set, ok := p.grants[role]
	if !ok {
		set = make(map[Permission]bool)
		p.grants[role] = set
	}
	set[perm] = true
}

// Allowed evalúa la pertenencia de perm al conjunto del rol.
func (p *Policy) Allowed(role string, perm Permission) bool {
	set := p.grants[role]
	if set == nil {
		return false
	}
	return set[All] || set[perm]
}

// CanManageRole informa si el rol actor puede crear o cambiar el estado de un usuario
// con rol target. Un rol con el comodín solo lo gestiona otro rol con el comodín.
func (p *Policy) CanManageRole(actor, target string) bool {
	if !p.grants[target][All] {
		return true
	}
	return p.grants[actor][All]
}

// Grants devuelve los permisos concedidos a un rol, ordenados.
func (p *Policy) Grants(role string) []Permission {
	out := make([]Permission, 0, len(p.grants[role]))
	for perm, ok := range p.grants[role] {
		if ok {
			out = append(out, perm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseGrants aplica una lista "rol:permiso,rol:permiso" sobre la política.
func (p *Policy) ParseGrants(raw string) error {
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		role, perm, ok := strings.Cut(item, ":")
		if !ok {
			return fmt.Errorf("authz: concesión mal formada %q", item)
		}
		role, perm = strings.TrimSpace(role), strings.TrimSpace(perm)
		if !entity.ValidRole(role) {
			return fmt.Errorf("authz: rol desconocido %q", role)
		}
		if !isKnown(Permission(perm)) {
			return fmt.Errorf("authz: permiso desconocido %q", perm)
		}
		p.Grant(role, Permission(perm))
	}
	return nil
}
