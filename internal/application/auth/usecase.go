package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/pkg/jwt"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

// AuthUseCase casos de uso de identidad: registro, login de staff y portal, refresh, logout.
type AuthUseCase struct {
	repos     repository.Repositories
	tx        repository.TxRunner
	creds     *CredentialStore
	issuer    *jwt.Issuer
	revoked   ports.TokenRevocationStore
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	repos repository.Repositories,
	tx repository.TxRunner,
	creds *CredentialStore,
	issuer *jwt.Issuer,
	revoked ports.TokenRevocationStore,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		repos:     repos,
		tx:        tx,
		creds:     creds,
		issuer:    issuer,
		revoked:   revoked,
		publisher: publisher,
		log:       log,
	}
}

var lower = cases.Lower(language.Und)

// Slugify deriva el slug de la empresa: minúsculas y espacios → guiones.
func Slugify(name string) string {
	return strings.Join(strings.Fields(lower.String(name)), "-")
}

// NormalizeEmail recorta y pasa a minúsculas; la unicidad es global e insensible a mayúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail validación sintáctica mínima.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register crea empresa + usuario owner en una sola transacción.
// Email duplicado: ErrEmailAlreadyExists. Slug duplicado: ErrDuplicate.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	name := strings.TrimSpace(in.CompanyName)
	email := NormalizeEmail(in.Email)
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if name == "" || email == "" || in.Password == "" || first == "" || last == "" {
		return nil, domain.Invalid("company_name, email, password, first_name y last_name son obligatorios")
	}
	if !ValidEmail(email) {
		return nil, domain.Invalid("email inválido")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, domain.Invalid("company_name inválido")
	}
	hash, err := uc.creds.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Status:    entity.StatusActive,
		Modules:   entity.DefaultModules(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Role:         entity.RoleOwner,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		ActivatedAt:  &now,
	}

	err = uc.tx.Run(ctx, func(r repository.Repositories) error {
		existing, err := r.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		taken, err := r.Companies.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if taken != nil {
			return fmt.Errorf("%w: slug %q", domain.ErrDuplicate, slug)
		}
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	ports.Notify(ctx, uc.publisher, uc.log, ports.Event{
		Type:      ports.EventCompanyRegistered,
		CompanyID: company.ID,
		EntityID:  company.ID,
		Data:      map[string]any{"slug": slug, "owner_id": user.ID},
	})
	return &dto.RegisterResponse{
		Message: "Company registered successfully",
		Company: dto.CompanySummary{ID: company.ID, Name: company.Name, Slug: company.Slug},
		User:    *ToUserResponse(user),
	}, nil
}

// Login autentica staff. Email desconocido y password errónea devuelven el mismo
// ErrUnauthorized; una cuenta no activa con password correcta devuelve ErrInactive.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email y password son obligatorios")
	}
	user, err := uc.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.creds.burn(in.Password)
		return nil, domain.ErrUnauthorized
	}
	if !uc.creds.compare(user.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrInactive, user.Status)
	}
	pair, err := uc.issuer.Issue(user.ID, authz.KindStaff)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message: "Login successful",
		Tokens:  toTokens(pair),
		User:    *ToUserResponse(user),
	}, nil
}

// PortalLogin autentica un cliente del portal con las mismas reglas que Login.
func (uc *AuthUseCase) PortalLogin(ctx context.Context, in dto.LoginRequest) (*dto.PortalLoginResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email y password son obligatorios")
	}
	client, err := uc.repos.Clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if client == nil {
		uc.creds.burn(in.Password)
		return nil, domain.ErrUnauthorized
	}
	if !uc.creds.compare(client.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	if !client.IsActive() {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrInactive, client.Status)
	}
	pair, err := uc.issuer.Issue(client.ID, authz.KindClient)
	if err != nil {
		return nil, err
	}
	return &dto.PortalLoginResponse{
		Tokens: toTokens(pair),
		Client: dto.ClientResponse{ID: client.ID, Email: client.Email, Name: client.Name},
	}, nil
}

// Refresh rota el par: el refresh usado queda revocado hasta su expiración.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	ref, err := uc.parseRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if err := uc.checkPrincipal(ctx, ref); err != nil {
		return nil, err
	}
	if err := uc.claim(ctx, ref); err != nil {
		return nil, err
	}
	pair, err := uc.issuer.Issue(ref.ID, ref.Kind)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Tokens: toTokens(pair)}, nil
}

// Logout revoca el refresh token. Un token ya revocado o inválido devuelve ErrUnauthorized.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	ref, err := uc.parseRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	return uc.claim(ctx, ref)
}

// claim revoca el refresh; si otra petición lo revocó antes, el token ya no vale.
func (uc *AuthUseCase) claim(ctx context.Context, ref jwt.PrincipalRef) error {
	ok, err := uc.revoked.Revoke(ctx, ref.TokenID, ref.ExpiresAt)
	if err != nil {
		return fmt.Errorf("revocar refresh: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: refresh revocado", domain.ErrUnauthorized)
	}
	return nil
}

func (uc *AuthUseCase) parseRefresh(ctx context.Context, token string) (jwt.PrincipalRef, error) {
	if strings.TrimSpace(token) == "" {
		return jwt.PrincipalRef{}, domain.Invalid("refresh_token es obligatorio")
	}
	ref, err := uc.issuer.ParseRefresh(token)
	if err != nil {
		return jwt.PrincipalRef{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	revoked, err := uc.revoked.IsRevoked(ctx, ref.TokenID)
	if err != nil {
		return jwt.PrincipalRef{}, fmt.Errorf("consultar revocación: %w", err)
	}
	if revoked {
		return jwt.PrincipalRef{}, fmt.Errorf("%w: refresh revocado", domain.ErrUnauthorized)
	}
	return ref, nil
}

// checkPrincipal aplica al refresh los mismos estados que el gate: principal y empresa activos.
func (uc *AuthUseCase) checkPrincipal(ctx context.Context, ref jwt.PrincipalRef) error {
	var companyID string
	switch ref.Kind {
	case authz.KindStaff:
		u, err := uc.repos.Users.GetByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUnauthorized
		}
		if !u.IsActive() {
			return domain.ErrInactive
		}
		companyID = u.CompanyID
	case authz.KindClient:
		c, err := uc.repos.Clients.GetByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrUnauthorized
		}
		if !c.IsActive() {
			return domain.ErrInactive
		}
		companyID = c.CompanyID
	default:
		return domain.ErrUnauthorized
	}
	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrUnauthorized
	}
	if company.Status != entity.StatusActive {
		return fmt.Errorf("%w: empresa %s", domain.ErrInactive, company.Status)
	}
	return nil
}

// Me perfil del staff autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, ac authz.Context) (*dto.MeResponse, error) {
	user, err := uc.repos.Users.GetByCompanyAndID(ctx, ac.CompanyID(), ac.PrincipalID())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.repos.Companies.GetByID(ctx, ac.CompanyID())
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.MeResponse{ID: user.ID, Email: user.Email, Role: user.Role, Company: company.Name}, nil
}

// PortalMe perfil del cliente autenticado.
func (uc *AuthUseCase) PortalMe(ctx context.Context, ac authz.Context) (*dto.PortalMeResponse, error) {
	client, err := uc.repos.Clients.GetByCompanyAndID(ctx, ac.CompanyID(), ac.PrincipalID())
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.repos.Companies.GetByID(ctx, ac.CompanyID())
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.PortalMeResponse{ID: client.ID, Email: client.Email, Name: client.Name, Company: company.Name}, nil
}

func toTokens(p jwt.Pair) dto.TokensResponse {
	return dto.TokensResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

// ToUserResponse convierte la entidad a su representación pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Status:      u.Status,
		ActivatedAt: u.ActivatedAt,
		CreatedAt:   u.CreatedAt,
	}
}
