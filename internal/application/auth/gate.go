package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/pkg/jwt"
)

// Gate resuelve token → principal → estado → permiso y entrega un authz.Context.
// Cada paso corta en el primer fallo.
type Gate struct {
	issuer    *jwt.Issuer
	users     repository.UserRepository
	clients   repository.ClientRepository
	companies repository.CompanyRepository
	policy    *authz.Policy
}

// NewGate construye el gate.
func NewGate(issuer *jwt.Issuer, repos repository.Repositories, policy *authz.Policy) *Gate {
	return &Gate{
		issuer:    issuer,
		users:     repos.Users,
		clients:   repos.Clients,
		companies: repos.Companies,
		policy:    policy,
	}
}

// Authenticate valida el access token, exige el kind pedido y carga el principal.
// Token ausente, inválido, expirado o de otro kind: ErrUnauthorized.
// Principal inexistente: ErrUnauthorized. Principal o empresa no activos: ErrInactive.
func (g *Gate) Authenticate(ctx context.Context, token, kind string) (authz.Context, error) {
	if token == "" {
		return authz.Context{}, fmt.Errorf("%w: token ausente", domain.ErrUnauthorized)
	}
	ref, err := g.issuer.ParseAccess(token)
	if err != nil {
		return authz.Context{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if ref.Kind != kind {
		return authz.Context{}, fmt.Errorf("%w: se requiere token %s", domain.ErrUnauthorized, kind)
	}

	var companyID, role string
	switch kind {
	case authz.KindStaff:
		u, err := g.users.GetByID(ctx, ref.ID)
		if err != nil {
			return authz.Context{}, err
		}
		if u == nil {
			return authz.Context{}, fmt.Errorf("%w: usuario no existe", domain.ErrUnauthorized)
		}
		if !u.IsActive() {
			return authz.Context{}, fmt.Errorf("%w: usuario %s", domain.ErrInactive, u.Status)
		}
		companyID, role = u.CompanyID, u.Role
	case authz.KindClient:
		c, err := g.clients.GetByID(ctx, ref.ID)
		if err != nil {
			return authz.Context{}, err
		}
		if c == nil {
			return authz.Context{}, fmt.Errorf("%w: cliente no existe", domain.ErrUnauthorized)
		}
		if !c.IsActive() {
			return authz.Context{}, fmt.Errorf("%w: cliente %s", domain.ErrInactive, c.Status)
		}
		companyID = c.CompanyID
	default:
		return authz.Context{}, fmt.Errorf("%w: kind %q", domain.ErrUnauthorized, kind)
	}

	company, err := g.companies.GetByID(ctx, companyID)
	if err != nil {
		return authz.Context{}, err
	}
	if company == nil {
		return authz.Context{}, fmt.Errorf("%w: empresa no existe", domain.ErrUnauthorized)
	}
	if company.Status != entity.StatusActive {
		return authz.Context{}, fmt.Errorf("%w: empresa %s", domain.ErrInactive, company.Status)
	}
	return authz.NewContext(ref.ID, kind, companyID, role), nil
}

// Authorize evalúa la tabla (rol, permiso). Solo el staff tiene roles; un cliente nunca pasa.
func (g *Gate) Authorize(ac authz.Context, perm authz.Permission) error {
	if !ac.Valid() || !ac.IsStaff() {
		return fmt.Errorf("%w: se requiere staff", domain.ErrForbidden)
	}
	if !g.policy.Allowed(ac.Role(), perm) {
		return fmt.Errorf("%w: rol %s sin permiso %s", domain.ErrForbidden, ac.Role(), perm)
	}
	return nil
}
